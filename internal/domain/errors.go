package domain

import "errors"

var (
	// ErrRetrievalUnavailable means the vector index could not be
	// reached or errored. Distinct from a valid empty result set.
	ErrRetrievalUnavailable = errors.New("retrieval index unavailable")

	// ErrChunkNotFound means a candidate id had no stored chunk.
	ErrChunkNotFound = errors.New("chunk not found")

	// ErrNoDocuments means ingestion found nothing to index.
	ErrNoDocuments = errors.New("no documents found")

	// ErrEmptyQuery rejects blank query text before any index call.
	ErrEmptyQuery = errors.New("query is empty")
)

// IsRetrievalUnavailable reports whether err stems from an unreachable
// or failing index, so callers can distinguish "system down" from
// "no relevant law found".
func IsRetrievalUnavailable(err error) bool {
	return errors.Is(err, ErrRetrievalUnavailable)
}
