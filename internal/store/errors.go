package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced id does not exist. Write paths
// detect it from an affected-row count of zero rather than a pre-check.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing required input. It is always
// raised before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
