package domain

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a year series holds no valid value at all, so
// there is no neighbour to fill its gaps from.
var ErrNoData = errors.New("series has no valid values")

// ValidationError reports a rejected parameter of a smoothing or aggregation
// request. It is never recovered from.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
