// Package service wires the document pipeline end to end: indexing
// (structure, assemble, embed, store) and querying (retrieve, score,
// cite, generate).
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lexrag/internal/citation"
	"lexrag/internal/confidence"
	"lexrag/internal/domain"
	"lexrag/internal/generator"
	"lexrag/internal/loader"
	"lexrag/internal/logger"
	"lexrag/internal/retriever"
)

// Deps collects the pipeline's collaborators. Generator may be nil for
// citations-only operation.
type Deps struct {
	Structurer domain.Structurer
	Assembler  domain.Assembler
	Embedder   domain.Embedder
	Index      domain.VectorStore
	Chunks     domain.ChunkStore
	Retriever  *retriever.Retriever
	Scorer     *confidence.Scorer
	Citations  *citation.Assembler
	Generator  domain.Generator
	Summarizer domain.Summarizer

	SummaryMaxSentences int
}

// Pipeline is the application core behind the CLI and TUI.
type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline { return &Pipeline{deps: deps} }

// IndexStats reports what one indexing run produced.
type IndexStats struct {
	Documents    int
	Chunks       int
	WithArticles int
	Oversized    int
	Summary      string
}

// Index structures, chunks, embeds and stores every document matched
// by paths. Embeddings are computed in parallel; writes to the vector
// store and chunk store happen from this goroutine only, so re-runs
// never race into duplicate entries. Structuring problems degrade per
// document and never abort indexing of the rest.
func (p *Pipeline) Index(ctx context.Context, paths []string) (*IndexStats, error) {
	docs, err := loader.LoadPaths(paths)
	if err != nil {
		return nil, err
	}

	logger.Section("Structuring")
	var allChunks []domain.Chunk
	var corpus strings.Builder
	for _, d := range docs {
		structured, err := p.deps.Structurer.Structure(d.Text, d.SourceFile)
		if err != nil {
			logger.Warn("%s: structuring failed (%v), skipping", d.SourceFile, err)
			continue
		}
		chunks, err := p.deps.Assembler.Assemble(structured)
		if err != nil {
			logger.Warn("%s: chunk assembly failed (%v), skipping", d.SourceFile, err)
			continue
		}
		allChunks = append(allChunks, chunks...)
		corpus.WriteString("\n")
		corpus.WriteString(d.Text)
	}
	if len(allChunks) == 0 {
		return nil, domain.ErrNoDocuments
	}

	texts := make([]string, len(allChunks))
	for i, ch := range allChunks {
		texts[i] = ch.Text
	}

	logger.Section("Embedding")
	if err := p.deps.Embedder.Prepare(texts); err != nil {
		return nil, fmt.Errorf("prepare embedder: %w", err)
	}
	vectors, err := p.embedAll(ctx, texts)
	if err != nil {
		return nil, err
	}

	logger.Section("Storing")
	if err := p.deps.Index.Init(ctx, p.deps.Embedder.Dimension()); err != nil {
		return nil, fmt.Errorf("init vector store: %w", err)
	}
	if err := p.deps.Chunks.Put(ctx, allChunks); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}
	if err := p.deps.Index.Upsert(ctx, allChunks, vectors); err != nil {
		return nil, fmt.Errorf("upsert vectors: %w", err)
	}

	stats := &IndexStats{Documents: len(docs), Chunks: len(allChunks)}
	for _, ch := range allChunks {
		if len(ch.ArticleNumbers) > 0 {
			stats.WithArticles++
		}
		if ch.Oversized {
			stats.Oversized++
		}
	}
	if p.deps.Summarizer != nil {
		summary, err := p.deps.Summarizer.Summarize(corpus.String(), p.deps.SummaryMaxSentences)
		if err != nil {
			logger.Warn("summarize failed: %v", err)
		} else {
			stats.Summary = summary
		}
	}
	logger.Info("indexed %d chunk(s) from %d document(s), %d with article numbers, %d oversized",
		stats.Chunks, stats.Documents, stats.WithArticles, stats.Oversized)
	return stats, nil
}

// embedAll computes chunk embeddings on a small worker pool. Each
// worker writes to its own slice positions; nothing touches the stores
// until every vector is in.
func (p *Pipeline) embedAll(ctx context.Context, texts []string) ([][]float64, error) {
	workers := runtime.NumCPU()
	if workers > len(texts) {
		workers = len(texts)
	}
	if workers < 1 {
		workers = 1
	}

	vectors := make([][]float64, len(texts))
	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				mu.Lock()
				failed := firstErr != nil
				mu.Unlock()
				if failed {
					continue // drain remaining jobs
				}
				vec, err := p.deps.Embedder.Embed(ctx, texts[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("embed chunk %d: %w", i, err)
					}
					mu.Unlock()
					continue
				}
				vectors[i] = vec
			}
		}()
	}

	for i := range texts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// Query runs the retrieval pipeline and, when a generator is
// configured, produces a grounded answer. Zero retrieved chunks is a
// valid outcome: the answer carries confidence 0 and the advisory
// warning instead of an error.
func (p *Pipeline) Query(ctx context.Context, query string, topK int) (*domain.Answer, error) {
	qid := uuid.NewString()[:8]
	logger.Section("Query " + qid)
	logger.Info("[%s] %q", qid, query)

	results, err := p.deps.Retriever.Retrieve(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	conf, low, warning := p.deps.Scorer.Score(results)
	answer := &domain.Answer{
		Citations:     p.deps.Citations.Assemble(results),
		Confidence:    conf,
		LowConfidence: low,
		Warning:       warning,
	}
	logger.Info("[%s] %d citation(s), confidence %d (%s)",
		qid, len(answer.Citations), conf, p.deps.Scorer.Band(conf))

	if len(results) == 0 {
		answer.Text = "Üzgünüm, veritabanında bu konuyla ilgili bilgi bulunamadı."
		return answer, nil
	}
	if p.deps.Generator != nil {
		prompt := generator.BuildPrompt(query, results)
		text, err := p.deps.Generator.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("generate answer: %w", err)
		}
		answer.Text = strings.TrimSpace(text)
	}
	return answer, nil
}

// ConfidenceBand exposes the scorer's band label for UI display.
func (p *Pipeline) ConfidenceBand(conf int) string { return p.deps.Scorer.Band(conf) }

// ChunkCount reports how many chunks the store currently holds.
func (p *Pipeline) ChunkCount(ctx context.Context) (int, error) {
	return p.deps.Chunks.Count(ctx)
}
