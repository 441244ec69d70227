package confidence

import (
	"testing"

	"lexrag/internal/domain"
)

func results(scores ...float64) []domain.ScoredChunk {
	out := make([]domain.ScoredChunk, len(scores))
	for i, s := range scores {
		out[i] = domain.ScoredChunk{RawScore: s}
	}
	return out
}

func TestNormalize_UnitScale(t *testing.T) {
	s := New(Options{Scale: "unit"})
	cases := []struct {
		raw  float64
		want float64
	}{
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{-0.3, 0},  // clamped
		{1.7, 1},   // clamped
	}
	for _, c := range cases {
		if got := s.Normalize(c.raw); got != c.want {
			t.Errorf("Normalize(%v) = %v, expected %v", c.raw, got, c.want)
		}
	}
}

func TestNormalize_CosineScale(t *testing.T) {
	s := New(Options{Scale: "cosine"})
	cases := []struct {
		raw  float64
		want float64
	}{
		{-1, 0},
		{0, 0.5},
		{1, 1},
		{0.5, 0.75},
	}
	for _, c := range cases {
		if got := s.Normalize(c.raw); got != c.want {
			t.Errorf("Normalize(%v) = %v, expected %v", c.raw, got, c.want)
		}
	}
}

func TestNormalize_Monotone(t *testing.T) {
	for _, scale := range []string{"unit", "cosine"} {
		s := New(Options{Scale: scale})
		prev := -1.0
		for raw := -1.0; raw <= 1.0; raw += 0.05 {
			got := s.Normalize(raw)
			if got < prev {
				t.Fatalf("scale %s: Normalize(%v)=%v below previous %v", scale, raw, got, prev)
			}
			prev = got
		}
	}
}

func TestScore_TopCandidateDrivesConfidence(t *testing.T) {
	s := New(Options{})
	conf, low, warning := s.Score(results(0.83, 0.2, 0.1))
	if conf != 83 {
		t.Errorf("expected confidence 83, got %d", conf)
	}
	if low || warning != "" {
		t.Errorf("high score should not warn: low=%v warning=%q", low, warning)
	}
}

func TestScore_LowConfidenceWarns(t *testing.T) {
	s := New(Options{})
	conf, low, warning := s.Score(results(0.31))
	if conf != 31 {
		t.Errorf("expected confidence 31, got %d", conf)
	}
	if !low {
		t.Error("expected low flag below the medium threshold")
	}
	if warning != Advisory {
		t.Errorf("expected the advisory warning, got %q", warning)
	}
}

func TestScore_EmptyResults(t *testing.T) {
	s := New(Options{})
	conf, low, warning := s.Score(nil)
	if conf != 0 || !low || warning != Advisory {
		t.Errorf("empty results should be 0/low/advisory, got %d/%v/%q", conf, low, warning)
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := New(Options{})
	rs := results(0.644, 0.6)
	c1, _, _ := s.Score(rs)
	c2, _, _ := s.Score(rs)
	if c1 != c2 {
		t.Errorf("same input gave %d then %d", c1, c2)
	}
}

func TestBand(t *testing.T) {
	s := New(Options{HighThreshold: 70, MediumThreshold: 50})
	cases := []struct {
		conf int
		want string
	}{
		{100, BandHigh},
		{70, BandHigh},
		{69, BandMedium},
		{50, BandMedium},
		{49, BandLow},
		{0, BandLow},
	}
	for _, c := range cases {
		if got := s.Band(c.conf); got != c.want {
			t.Errorf("Band(%d) = %q, expected %q", c.conf, got, c.want)
		}
	}
}

func TestBand_CustomThresholds(t *testing.T) {
	s := New(Options{HighThreshold: 90, MediumThreshold: 60})
	if s.Band(75) != BandMedium {
		t.Errorf("Band(75) with high=90 should be medium, got %q", s.Band(75))
	}
}
