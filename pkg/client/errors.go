package client

import "fmt"

// errorResponse is the engine's error envelope.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail carries the engine's error code and message.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConflictError reports that the engine rejected an operation because of a
// pre-existing resource: a duplicate Dag name on PostDag, or an active run
// when starting with singleton set.
type ConflictError struct {
	Code    string
	Message string
}

// Error returns a human-readable representation of the conflict.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// NotFoundError reports that the referenced Dag or dag-run does not exist.
// A freshly started run may be reported not-found until the engine's state
// becomes visible.
type NotFoundError struct {
	Code    string
	Message string
}

// Error returns a human-readable representation of the failure.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

// APIError reports an engine rejection outside the conflict/not-found cases.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error returns a human-readable representation of the failure.
func (e *APIError) Error() string {
	return fmt.Sprintf("engine error (status %d): %s", e.StatusCode, e.Message)
}

// TransportError wraps a connectivity, timeout or protocol-level failure
// from the underlying transport. The cause is propagated unchanged.
type TransportError struct {
	Operation string
	Err       error
}

// Error returns a human-readable representation of the failure.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error in %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}
