package pipeline

import "errors"

var (
	// ErrClassifierRequired is returned when no classifier is provided.
	ErrClassifierRequired = errors.New("classifier is required")

	// ErrSynthesizerRequired is returned when no synthesizer is provided.
	ErrSynthesizerRequired = errors.New("synthesizer is required")

	// ErrFormatterRequired is returned when no formatter is provided.
	ErrFormatterRequired = errors.New("formatter is required")
)
