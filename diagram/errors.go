package diagram

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by graph construction and validation. Malformed
// input is rejected here so the mapping, diff, and validation engines can
// assume a well-formed graph and never re-check referential integrity.
var (
	// ErrDuplicateID is returned when two elements of the same collection
	// share an id.
	ErrDuplicateID = errors.New("diagram: duplicate element id")

	// ErrMissingName is returned when a class has no name.
	ErrMissingName = errors.New("diagram: missing class name")

	// ErrUnknownClass is returned when a relationship endpoint references
	// a class id that is not part of the graph.
	ErrUnknownClass = errors.New("diagram: relationship endpoint references unknown class")

	// ErrMultiplicity is returned when a relationship carries a multiplicity
	// outside the five enumerated values.
	ErrMultiplicity = errors.New("diagram: invalid multiplicity")

	// ErrKind is returned when an element carries a kind or visibility
	// outside its enumerated values.
	ErrKind = errors.New("diagram: invalid kind")
)

// ValidationError reports a single malformed element found while validating
// a graph. It unwraps to one of the sentinel errors above.
type ValidationError struct {
	Elem string // offending element id, or its name when the id is empty
	Err  error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	if e.Elem == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Elem)
}

// Unwrap returns the sentinel this validation error wraps.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given element.
func NewValidationError(elem string, err error) *ValidationError {
	return &ValidationError{Elem: elem, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}
