package barcode

import "errors"

var (
	// ErrClientRequired is returned when a nil lookup client is provided.
	ErrClientRequired = errors.New("lookup client is required")

	// ErrCompleterRequired is returned when a nil completer is provided.
	ErrCompleterRequired = errors.New("completer is required")
)
