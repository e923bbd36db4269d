package pokemon

import (
	"errors"
	"fmt"
)

// Base errors as sentinels.
var (
	// ErrInvalidInput indicates the caller supplied an empty or blank name.
	ErrInvalidInput = errors.New("pokemon name cannot be empty")

	// ErrUnavailable indicates the upstream data provider could not be reached.
	ErrUnavailable = errors.New("upstream provider unreachable")

	// ErrTimeout indicates the upstream data provider did not answer in time.
	ErrTimeout = errors.New("upstream provider timed out")
)

// NotFoundError indicates the subject does not exist upstream.
type NotFoundError struct {
	name string
}

// NewNotFoundError creates a NotFoundError for the given subject name.
func NewNotFoundError(name string) *NotFoundError {
	return &NotFoundError{name: name}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pokemon '%s' not found", e.name)
}

// Name returns the subject name that was not found.
func (e *NotFoundError) Name() string { return e.name }

// UpstreamError indicates the provider answered with an unexpected status or
// an unusable payload.
type UpstreamError struct {
	status  int
	message string
	cause   error
}

// NewUpstreamError creates an UpstreamError.
func NewUpstreamError(status int, message string, cause error) *UpstreamError {
	return &UpstreamError{status: status, message: message, cause: cause}
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("upstream error %d: %s: %v", e.status, e.message, e.cause)
	}
	return fmt.Sprintf("upstream error %d: %s", e.status, e.message)
}

// Unwrap returns the underlying cause.
func (e *UpstreamError) Unwrap() error { return e.cause }

// Status returns the upstream HTTP status, or 0 when the payload itself was
// malformed.
func (e *UpstreamError) Status() int { return e.status }

// Message returns the error message.
func (e *UpstreamError) Message() string { return e.message }
