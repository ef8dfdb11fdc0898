package reconcile

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrChunkRepositoryRequired is returned when a Sweeper is constructed
	// without a chunk repository.
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrMeetingRepositoryRequired is returned when a Sweeper is constructed
	// without a meeting repository.
	ErrMeetingRepositoryRequired = errors.New("meeting repository is required")

	// ErrVectorIndexRequired is returned when a Sweeper is constructed
	// without a vector index.
	ErrVectorIndexRequired = errors.New("vector index is required")

	// ErrEmbedderRequired is returned when a Sweeper is constructed without
	// an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")
)
