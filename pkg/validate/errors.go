package validate

import "fmt"

// FieldError is a validation failure tied to a specific field. Field is a
// path like "steps[1].name"; Reason is the human-readable expectation that
// was violated.
type FieldError struct {
	Field  string
	Reason string
}

// Error returns a human-readable representation of the failure.
func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// fieldErrorf builds a FieldError with a formatted reason.
func fieldErrorf(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
