package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"lexrag/internal/domain"
)

// Store is an in-memory vector index using brute-force cosine
// similarity. Upserting an existing chunk id replaces its vector, so
// concurrent re-indexing never duplicates entries.
type Store struct {
	mu        sync.RWMutex
	dimension int
	ids       []string
	vectors   [][]float64
	byID      map[string]int
}

func New() *Store { return &Store{byID: make(map[string]int)} }

func (s *Store) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.ids = nil
	s.vectors = nil
	s.byID = make(map[string]int)
	return nil
}

func (s *Store) Upsert(_ context.Context, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for i, ch := range chunks {
		if j, ok := s.byID[ch.ID]; ok {
			s.vectors[j] = vectors[i]
			continue
		}
		s.byID[ch.ID] = len(s.ids)
		s.ids = append(s.ids, ch.ID)
		s.vectors = append(s.vectors, vectors[i])
	}
	return nil
}

func (s *Store) Search(_ context.Context, vector []float64, topK int) ([]domain.RetrievalCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	// cosine similarity; stored vectors are assumed L2-normalized
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = dot(s.vectors[i], vector)
	}
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.RetrievalCandidate, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		if math.IsNaN(scores[j]) {
			continue
		}
		results = append(results, domain.RetrievalCandidate{ChunkID: s.ids[j], RawScore: scores[j]})
	}
	return results, nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.vectors = nil
	s.byID = make(map[string]int)
	return nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
