package reembed

import "errors"

var (
	// ErrStoreRequired is returned when a nil store is provided.
	ErrStoreRequired = errors.New("example store is required")

	// ErrEmbedderRequired is returned when a nil embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than zero")
)
