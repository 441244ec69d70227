// Package retriever turns a query into an ordered set of grounded
// chunks: embed, search, floor-filter, deduplicate per article, order
// deterministically, truncate.
package retriever

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lexrag/internal/domain"
	"lexrag/internal/logger"
)

// Options are the query-time tuning knobs, threaded in from config.
type Options struct {
	TopK            int
	SimilarityFloor float64
	DedupByArticle  bool
}

// Retriever resolves queries against the vector index and chunk store.
type Retriever struct {
	embedder domain.Embedder
	index    domain.VectorStore
	chunks   domain.ChunkStore
	opts     Options
}

func New(embedder domain.Embedder, index domain.VectorStore, chunks domain.ChunkStore, opts Options) *Retriever {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	return &Retriever{embedder: embedder, index: index, chunks: chunks, opts: opts}
}

// Retrieve returns up to topK scored chunks ordered by raw score
// descending, ties broken by ascending sequence index. An empty result
// is a valid "no relevant context" outcome; an unreachable index or
// embedder surfaces as domain.ErrRetrievalUnavailable instead.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if topK <= 0 {
		topK = r.opts.TopK
	}

	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrRetrievalUnavailable, err)
	}
	// Fetch extra headroom so floor filtering and dedup still leave
	// topK usable results.
	candidates, err := r.index.Search(ctx, vec, topK*2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
	}

	var results []domain.ScoredChunk
	for _, c := range candidates {
		if c.RawScore < r.opts.SimilarityFloor {
			logger.Debug("dropping %s below similarity floor (%.4f < %.4f)",
				c.ChunkID, c.RawScore, r.opts.SimilarityFloor)
			continue
		}
		chunk, err := r.chunks.Get(ctx, c.ChunkID)
		if err != nil {
			if domain.IsRetrievalUnavailable(err) {
				return nil, err
			}
			logger.Warn("candidate %s not resolvable: %v", c.ChunkID, err)
			continue
		}
		results = append(results, domain.ScoredChunk{Chunk: chunk, RawScore: c.RawScore})
	}

	if r.opts.DedupByArticle {
		results = dedupByArticle(results)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].RawScore != results[j].RawScore {
			return results[i].RawScore > results[j].RawScore
		}
		return results[i].Chunk.SequenceIndex < results[j].Chunk.SequenceIndex
	})
	if len(results) > topK {
		results = results[:topK]
	}
	logger.Info("query %q: %d candidate(s), %d kept", query, len(candidates), len(results))
	return results, nil
}

// dedupByArticle keeps the best-scoring chunk per article-number set
// so one provision cannot dominate the list with near-duplicate
// fragments. Chunks with no article numbers are always kept: an empty
// set identifies nothing, so collapsing them would merge unrelated
// passages.
func dedupByArticle(results []domain.ScoredChunk) []domain.ScoredChunk {
	best := make(map[string]domain.ScoredChunk)
	var order []string
	for _, r := range results {
		if len(r.Chunk.ArticleNumbers) == 0 {
			key := "seq:" + fmt.Sprint(r.Chunk.SequenceIndex) + ":" + r.Chunk.SourceFile
			best[key] = r
			order = append(order, key)
			continue
		}
		key := r.Chunk.SourceFile + "|" + strings.Join(r.Chunk.ArticleNumbers, ",")
		prev, ok := best[key]
		if !ok {
			best[key] = r
			order = append(order, key)
			continue
		}
		if r.RawScore > prev.RawScore ||
			(r.RawScore == prev.RawScore && r.Chunk.SequenceIndex < prev.Chunk.SequenceIndex) {
			best[key] = r
		}
	}
	out := make([]domain.ScoredChunk, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}
