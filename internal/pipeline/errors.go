package pipeline

import "errors"

// ErrMissingInput is returned when a step runs before the step that produces
// its input.
var ErrMissingInput = errors.New("missing step input")
