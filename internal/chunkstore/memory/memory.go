// Package memory provides an in-process chunk store, used for tests
// and for runs that do not need a persistent index.
package memory

import (
	"context"
	"fmt"
	"sync"

	"lexrag/internal/domain"
)

// Store keeps chunks in a map guarded by an RWMutex.
type Store struct {
	mu     sync.RWMutex
	chunks map[string]domain.Chunk
}

func New() *Store { return &Store{chunks: make(map[string]domain.Chunk)} }

func (s *Store) Put(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range chunks {
		s.chunks[ch.ID] = ch
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.chunks[id]
	if !ok {
		return domain.Chunk{}, fmt.Errorf("%w: %s", domain.ErrChunkNotFound, id)
	}
	return ch, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = make(map[string]domain.Chunk)
	return nil
}

func (s *Store) Close() error { return nil }
