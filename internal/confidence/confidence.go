// Package confidence converts opaque index similarity into a 0..100
// trust signal that gates the low-confidence warning downstream.
package confidence

import (
	"math"

	"lexrag/internal/domain"
)

// Advisory is the fixed message attached to low-confidence answers.
const Advisory = "Low confidence score. Try asking a more specific question."

// Band labels.
const (
	BandHigh   = "high"
	BandMedium = "medium"
	BandLow    = "low"
)

// Scorer is deterministic and pure: the same result set always yields
// the same confidence.
type Scorer struct {
	scale  string
	high   int
	medium int
}

// Options configure the raw-score scale and the band thresholds.
// Scale "cosine" expects raw scores in [-1,1]; "unit" expects [0,1].
type Options struct {
	Scale           string
	HighThreshold   int
	MediumThreshold int
}

func New(opts Options) *Scorer {
	if opts.Scale == "" {
		opts.Scale = "unit"
	}
	if opts.HighThreshold == 0 {
		opts.HighThreshold = 70
	}
	if opts.MediumThreshold == 0 {
		opts.MediumThreshold = 50
	}
	return &Scorer{scale: opts.Scale, high: opts.HighThreshold, medium: opts.MediumThreshold}
}

// Normalize maps a raw index score into [0,1].
//
// Formula v1: scale "cosine" maps [-1,1] linearly via (raw+1)/2;
// scale "unit" clamps [0,1] as-is. Swapping the underlying index only
// requires changing the configured scale, not this contract. The
// mapping is monotone: s1 < s2 never normalizes out of order.
func (s *Scorer) Normalize(raw float64) float64 {
	v := raw
	if s.scale == "cosine" {
		v = (raw + 1) / 2
	}
	return math.Max(0, math.Min(1, v))
}

// Score derives the confidence value from the top candidate. An empty
// result set is confidence 0 with the low flag set; that is a valid
// outcome, not an error.
func (s *Scorer) Score(results []domain.ScoredChunk) (confidence int, low bool, warning string) {
	if len(results) == 0 {
		return 0, true, Advisory
	}
	confidence = int(math.Round(100 * s.Normalize(results[0].RawScore)))
	if confidence < s.medium {
		return confidence, true, Advisory
	}
	return confidence, false, ""
}

// Band labels a confidence value using the configured thresholds.
func (s *Scorer) Band(confidence int) string {
	switch {
	case confidence >= s.high:
		return BandHigh
	case confidence >= s.medium:
		return BandMedium
	default:
		return BandLow
	}
}
