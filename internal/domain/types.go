package domain

// UnitKind classifies a structured unit of a legal document.
type UnitKind string

const (
	UnitArticle  UnitKind = "article"
	UnitClause   UnitKind = "clause"
	UnitPreamble UnitKind = "preamble"
)

// StructuredUnit is one node of the document tree: an Article, one of
// its Clauses, or preamble text with no recognizable number.
// Children preserve document order. A Clause's parent is always its
// enclosing Article; units without a number are never merged into a
// numbered Article.
type StructuredUnit struct {
	Kind     UnitKind
	Number   string // "" when unnumbered
	Text     string
	Page     int
	Start    int             // byte offset into the source text, inclusive
	End      int             // byte offset into the source text, exclusive
	Parent   *StructuredUnit // non-owning back-reference
	Children []*StructuredUnit
}

// Numbered reports whether the unit carries an article or clause number.
func (u *StructuredUnit) Numbered() bool { return u.Number != "" }

// StructuredDocument is the structurer's output for one source file:
// the ordered unit tree plus the page layout of the extracted text.
type StructuredDocument struct {
	SourceFile string
	RawText    string
	PageStarts []int // byte offset where each page begins, ascending
	Units      []*StructuredUnit
}

// PageAt returns the 1-based page number containing the byte offset,
// from the nearest preceding page boundary.
func (d *StructuredDocument) PageAt(offset int) int {
	page := 1
	for i := 1; i < len(d.PageStarts); i++ {
		if d.PageStarts[i] > offset {
			break
		}
		page = i + 1
	}
	return page
}

// Chunk is a bounded-size retrievable unit. Its ID is derived from the
// source position so re-assembly of unchanged input yields identical
// ids. Each chunk maps to exactly one contiguous byte range of one
// source file.
type Chunk struct {
	ID             string
	Text           string
	SourceFile     string
	Page           int
	ArticleNumbers []string
	SequenceIndex  int
	Start          int
	End            int
	Oversized      bool // an indivisible run exceeded the size limit
}

// RetrievalCandidate is a raw hit returned by the vector index.
// RawScore is whatever similarity the index uses; higher is better.
type RetrievalCandidate struct {
	ChunkID  string
	RawScore float64
}

// ScoredChunk is a candidate resolved against the chunk store.
type ScoredChunk struct {
	Chunk    Chunk
	RawScore float64
}

// Citation is the externally visible result unit handed to the answer
// generator and the UI. Score is normalized to [0,1], never the raw
// index metric.
type Citation struct {
	SourceFile string
	Article    string // human-readable label, "" when unknown
	Page       int
	Preview    string
	Score      float64
}

// Answer is the final response of the query pipeline.
type Answer struct {
	Text          string
	Citations     []Citation
	Confidence    int // 0..100
	LowConfidence bool
	Warning       string
}
