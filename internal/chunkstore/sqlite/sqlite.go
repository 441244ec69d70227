// Package sqlite persists chunks and their metadata in a local SQLite
// database so retrieval candidates can be resolved back to full text
// and citation metadata.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"lexrag/internal/domain"
)

// Store is a persistent chunk store backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the chunk database at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db, path: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("pragma failed: %w", err)
		}
	}
	schema := `
		CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			source_file TEXT NOT NULL,
			page_number INTEGER NOT NULL,
			article_numbers TEXT,
			sequence_index INTEGER NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			oversized INTEGER NOT NULL DEFAULT 0
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// Put stores chunks in one transaction. Existing ids are replaced, so
// re-indexing unchanged sources is idempotent.
func (s *Store) Put(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks
			(id, text, source_file, page_number, article_numbers, sequence_index, start_offset, end_offset, oversized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ch := range chunks {
		var articles []byte
		if len(ch.ArticleNumbers) > 0 {
			articles, _ = json.Marshal(ch.ArticleNumbers)
		}
		oversized := 0
		if ch.Oversized {
			oversized = 1
		}
		if _, err := stmt.ExecContext(ctx, ch.ID, ch.Text, ch.SourceFile, ch.Page,
			articles, ch.SequenceIndex, ch.Start, ch.End, oversized); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get resolves a chunk id. Missing ids return domain.ErrChunkNotFound.
func (s *Store) Get(ctx context.Context, id string) (domain.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, source_file, page_number, article_numbers, sequence_index, start_offset, end_offset, oversized
		FROM chunks WHERE id = ?`, id)

	var ch domain.Chunk
	var articles sql.NullString
	var oversized int
	err := row.Scan(&ch.ID, &ch.Text, &ch.SourceFile, &ch.Page, &articles,
		&ch.SequenceIndex, &ch.Start, &ch.End, &oversized)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Chunk{}, fmt.Errorf("%w: %s", domain.ErrChunkNotFound, id)
	}
	if err != nil {
		return domain.Chunk{}, err
	}
	if articles.Valid && articles.String != "" {
		_ = json.Unmarshal([]byte(articles.String), &ch.ArticleNumbers)
	}
	ch.Oversized = oversized != 0
	return ch, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}

// Clear removes all stored chunks.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks")
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
