package answer

import "errors"

// ErrCompleterRequired is returned when a nil completer is provided.
var ErrCompleterRequired = errors.New("completer is required")
