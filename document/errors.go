package document

import "errors"

var (
	// ErrCompleterRequired is returned when a nil completer is provided.
	ErrCompleterRequired = errors.New("completer is required")

	// ErrEmptyDocument is returned when a PDF contains no extractable text.
	ErrEmptyDocument = errors.New("document contains no text")
)
