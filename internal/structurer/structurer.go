// Package structurer parses extracted legal text into an ordered tree
// of Article and Clause units with locatable metadata. Boundary
// detection is an ordered cascade: article headers first, clause
// markers inside each article body. Finer separators are left to the
// chunk assembler, which only needs them for oversized units.
package structurer

import (
	"strings"

	"lexrag/internal/domain"
	"lexrag/internal/logger"
)

// LegalStructurer detects Turkish statute boundaries ("MADDE 76",
// "GEÇİCİ MADDE 3", clause markers like "(2) ") in extracted text.
type LegalStructurer struct {
	articles boundaryDetector
	clauses  boundaryDetector
}

// New returns a structurer configured for Turkish legal texts.
func New() *LegalStructurer {
	return &LegalStructurer{
		articles: articleHeaderDetector(),
		clauses:  clauseMarkerDetector(),
	}
}

// Structure splits rawText into top-level units and nests clause units
// under their enclosing article. Text before the first article header
// becomes a Preamble unit. A document with no recognizable article
// headers at all degrades to a single unnumbered unit; that is logged,
// not an error.
func (s *LegalStructurer) Structure(rawText, sourceFile string) (*domain.StructuredDocument, error) {
	doc := &domain.StructuredDocument{
		SourceFile: sourceFile,
		RawText:    rawText,
		PageStarts: pageStarts(rawText),
	}
	if strings.TrimSpace(rawText) == "" {
		logger.Warn("%s: empty source text, no units produced", sourceFile)
		return doc, nil
	}

	heads := s.articles.Detect(rawText)
	if len(heads) == 0 {
		logger.Warn("%s: no article headers found, falling back to a single unnumbered unit", sourceFile)
		doc.Units = []*domain.StructuredUnit{{
			Kind: domain.UnitPreamble,
			Text: rawText,
			Page: doc.PageAt(0),
			End:  len(rawText),
		}}
		return doc, nil
	}

	if heads[0].Start > 0 {
		pre := rawText[:heads[0].Start]
		if strings.TrimSpace(pre) != "" {
			doc.Units = append(doc.Units, &domain.StructuredUnit{
				Kind: domain.UnitPreamble,
				Text: pre,
				Page: doc.PageAt(0),
				End:  heads[0].Start,
			})
		}
	}

	for i, h := range heads {
		end := len(rawText)
		if i+1 < len(heads) {
			end = heads[i+1].Start
		}
		article := &domain.StructuredUnit{
			Kind:   domain.UnitArticle,
			Number: h.Number,
			Text:   rawText[h.Start:end],
			Page:   doc.PageAt(h.Start),
			Start:  h.Start,
			End:    end,
		}
		s.attachClauses(doc, article)
		doc.Units = append(doc.Units, article)
	}
	logger.Info("%s: structured %d top-level units across %d page(s)",
		sourceFile, len(doc.Units), len(doc.PageStarts))
	return doc, nil
}

// attachClauses splits an article body into child Clause units. The
// header and any text before the first clause marker stay as an
// unnumbered leading child so clause-by-clause assembly keeps every
// byte of the article.
func (s *LegalStructurer) attachClauses(doc *domain.StructuredDocument, article *domain.StructuredUnit) {
	body := doc.RawText[article.Start:article.End]
	marks := s.clauses.Detect(body)
	if len(marks) == 0 {
		return
	}

	addChild := func(kind domain.UnitKind, number string, start, end int) {
		if strings.TrimSpace(doc.RawText[start:end]) == "" {
			return
		}
		article.Children = append(article.Children, &domain.StructuredUnit{
			Kind:   kind,
			Number: number,
			Text:   doc.RawText[start:end],
			Page:   doc.PageAt(start),
			Start:  start,
			End:    end,
			Parent: article,
		})
	}

	first := article.Start + marks[0].Start
	addChild(domain.UnitClause, "", article.Start, first)
	for i, m := range marks {
		start := article.Start + m.Start
		end := article.End
		if i+1 < len(marks) {
			end = article.Start + marks[i+1].Start
		}
		addChild(domain.UnitClause, m.Number, start, end)
	}
}

// pageStarts locates page boundaries. Extracted text uses form feed
// characters between pages (the pdftotext convention).
func pageStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\f' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
