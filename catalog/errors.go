package catalog

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a batch is allowed no embedding
	// attempts.
	ErrInvalidMaxAttempts = errors.New("embedding attempts must be greater than 0")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a
	// different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrNotUnitNorm is returned when a corpus vector is not unit length.
	ErrNotUnitNorm = errors.New("vector is not unit norm")

	// ErrSemanticUnavailable is returned by vector operations on a
	// keyword-only catalog.
	ErrSemanticUnavailable = errors.New("semantic search unavailable")

	// ErrNoCatalog is returned when no complete catalog build is stored.
	ErrNoCatalog = errors.New("no catalog has been built")

	// ErrUnsupportedSnapshot is returned for snapshots of an unknown version.
	ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")
)
