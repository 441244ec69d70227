package domain

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Structurer parses raw extracted text into an ordered unit tree.
type Structurer interface {
	Structure(rawText, sourceFile string) (*StructuredDocument, error)
}

// Assembler converts a structured document into bounded-size chunks.
type Assembler interface {
	Assemble(doc *StructuredDocument) ([]Chunk, error)
}

// VectorStore is the external embedding-index boundary. Search returns
// candidates ordered by raw score descending; the metric itself is
// opaque to callers.
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []Chunk, vectors [][]float64) error
	Search(ctx context.Context, vector []float64, topK int) ([]RetrievalCandidate, error)
	Clear(ctx context.Context) error
}

// ChunkStore resolves chunk ids back to full chunks with metadata.
// It owns persisted copies of chunks for the lifetime of the index.
type ChunkStore interface {
	Put(ctx context.Context, chunks []Chunk) error
	Get(ctx context.Context, id string) (Chunk, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
	Close() error
}

// Generator is the downstream answer-generation boundary.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
