// Package chunker assembles structured legal units into bounded-size
// retrievable chunks. An article that fits the size limit becomes
// exactly one chunk; oversized articles split clause-by-clause, and
// oversized clauses fall back to generic separators with a character
// overlap. Chunk ids derive from the source byte range, so re-running
// assembly on unchanged input is byte-identical.
package chunker

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"lexrag/internal/domain"
	"lexrag/internal/logger"
)

// LegalAssembler converts a structured document into chunks.
type LegalAssembler struct {
	maxChunkSize int
	overlap      int
}

// New creates an assembler. Non-positive sizes fall back to defaults;
// overlap is clamped below the chunk size.
func New(maxChunkSize, overlap int) *LegalAssembler {
	if maxChunkSize <= 0 {
		maxChunkSize = 1200
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}
	return &LegalAssembler{maxChunkSize: maxChunkSize, overlap: overlap}
}

// Assemble walks top-level units in document order and emits chunks
// with a monotonically increasing sequence index. Chunk text is always
// a contiguous slice of the source; overlap is only ever applied
// inside a single article or clause, never across an article boundary.
func (a *LegalAssembler) Assemble(doc *domain.StructuredDocument) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	seq := 0
	emit := func(start, end int, articles []string, oversized bool) {
		text := doc.RawText[start:end]
		if strings.TrimSpace(text) == "" {
			return
		}
		if oversized {
			logger.Warn("%s: emitting oversized chunk of %d bytes at offset %d",
				doc.SourceFile, end-start, start)
		}
		chunks = append(chunks, domain.Chunk{
			ID:             chunkID(doc.SourceFile, start, end),
			Text:           text,
			SourceFile:     doc.SourceFile,
			Page:           doc.PageAt(start),
			ArticleNumbers: articles,
			SequenceIndex:  seq,
			Start:          start,
			End:            end,
			Oversized:      oversized,
		})
		seq++
	}

	for _, u := range doc.Units {
		if u.Kind == domain.UnitArticle {
			a.assembleArticle(u, emit)
		} else {
			a.splitSpan(doc.RawText, u.Start, u.End, nil, emit)
		}
	}
	logger.Info("%s: assembled %d chunks (max %d, overlap %d)",
		doc.SourceFile, len(chunks), a.maxChunkSize, a.overlap)
	return chunks, nil
}

type emitFunc func(start, end int, articles []string, oversized bool)

// assembleArticle keeps a fitting article whole, otherwise packs its
// clause children greedily and falls back to separator splitting for
// any clause that alone exceeds the limit.
func (a *LegalAssembler) assembleArticle(article *domain.StructuredUnit, emit emitFunc) {
	var articles []string
	if article.Numbered() {
		articles = []string{article.Number}
	}
	if article.End-article.Start <= a.maxChunkSize {
		emit(article.Start, article.End, articles, false)
		return
	}
	if len(article.Children) == 0 {
		a.splitSpan(article.Text, 0, 0, articles, offsetEmit(article.Start, emit))
		return
	}

	winStart, winEnd := -1, -1
	flush := func() {
		if winStart >= 0 {
			emit(winStart, winEnd, articles, false)
			winStart, winEnd = -1, -1
		}
	}
	for _, clause := range article.Children {
		size := clause.End - clause.Start
		if size > a.maxChunkSize {
			flush()
			a.splitSpan(clause.Text, 0, 0, articles, offsetEmit(clause.Start, emit))
			continue
		}
		if winStart >= 0 && clause.End-winStart > a.maxChunkSize {
			flush()
		}
		if winStart < 0 {
			winStart = clause.Start
		}
		winEnd = clause.End
	}
	flush()
}

// splitSpan cuts text into pieces no longer than the limit using the
// fallback separator cascade. It prefers the coarsest separator that
// matches and cuts as late as the budget allows, copying overlap
// characters into the next piece. An unbroken run longer than the
// limit is emitted whole and flagged oversized rather than dropped.
func (a *LegalAssembler) splitSpan(text string, start, end int, articles []string, emit emitFunc) {
	if end == 0 {
		end = len(text)
	}
	pos := start
	for end-pos > a.maxChunkSize {
		cut := lastBoundaryWithin(text[pos : pos+a.maxChunkSize])
		if cut <= 0 {
			stop := end
			if next := firstBoundaryAfter(text[pos:end], a.maxChunkSize); next > 0 {
				stop = pos + next
			}
			emit(pos, stop, articles, stop-pos > a.maxChunkSize)
			pos = stop
			continue
		}
		emit(pos, pos+cut, articles, false)
		next := pos + cut - a.overlap
		if next <= pos {
			next = pos + cut
		}
		pos = next
	}
	if pos < end {
		emit(pos, end, articles, false)
	}
}

// offsetEmit rebases span-relative offsets onto source offsets.
func offsetEmit(base int, emit emitFunc) emitFunc {
	return func(start, end int, articles []string, oversized bool) {
		emit(base+start, base+end, articles, oversized)
	}
}

func chunkID(source string, start, end int) string {
	h := sha1.Sum([]byte(fmt.Sprintf("%s:%d-%d", source, start, end)))
	return hex.EncodeToString(h[:8])
}
