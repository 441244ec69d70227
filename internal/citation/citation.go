// Package citation renders retrieved chunks into the structured
// citation list handed to the answer generator and the UI.
package citation

import (
	"strings"

	"lexrag/internal/confidence"
	"lexrag/internal/domain"
)

// Assembler builds citations with a bounded preview snippet. Scores
// are the same normalized values the confidence scorer uses, so the UI
// and the confidence reasoning never disagree.
type Assembler struct {
	scorer        *confidence.Scorer
	previewLength int
}

func New(scorer *confidence.Scorer, previewLength int) *Assembler {
	if previewLength <= 0 {
		previewLength = 200
	}
	return &Assembler{scorer: scorer, previewLength: previewLength}
}

// Assemble preserves the retriever's ordering.
func (a *Assembler) Assemble(results []domain.ScoredChunk) []domain.Citation {
	citations := make([]domain.Citation, 0, len(results))
	for _, r := range results {
		citations = append(citations, domain.Citation{
			SourceFile: r.Chunk.SourceFile,
			Article:    articleLabel(r.Chunk.ArticleNumbers),
			Page:       r.Chunk.Page,
			Preview:    a.preview(r.Chunk.Text),
			Score:      a.scorer.Normalize(r.RawScore),
		})
	}
	return citations
}

// preview truncates to a rune-safe prefix with a trailing marker.
func (a *Assembler) preview(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= a.previewLength {
		return text
	}
	return strings.TrimSpace(string(runes[:a.previewLength])) + "..."
}

// articleLabel renders the human-readable article reference, e.g.
// "Madde 76", "Geçici Madde 3", or "Madde 12, 13" for a chunk spanning
// two provisions.
func articleLabel(numbers []string) string {
	if len(numbers) == 0 {
		return ""
	}
	if len(numbers) == 1 {
		if rest, ok := strings.CutPrefix(numbers[0], "Geçici "); ok {
			return "Geçici Madde " + rest
		}
		return "Madde " + numbers[0]
	}
	return "Madde " + strings.Join(numbers, ", ")
}
