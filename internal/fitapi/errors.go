package fitapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream outcomes.
var (
	// ErrNotFound is returned when a specific resource id does not exist
	// upstream (404 on get/delete).
	ErrNotFound = errors.New("resource not found")

	// ErrInsufficientData is returned when an ML endpoint answers with its
	// "not enough history" marker instead of a payload. Callers treat it the
	// same as any other optional-source failure.
	ErrInsufficientData = errors.New("insufficient data for prediction")

	// ErrNoSession is returned when a request requires authentication but no
	// session is active.
	ErrNoSession = errors.New("no active session")
)

// AuthError indicates the upstream rejected the bearer token (expired or
// invalid). It is a distinct kind so callers can force re-authentication.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Detail
}

// TransportError wraps a network-level failure (connection refused, timeout,
// cancelled context, open circuit breaker).
type TransportError struct {
	Resource string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError carries a non-2xx upstream response with the server-provided
// detail message when one was present in the body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Detail)
}

// Message returns the server-provided detail if available, otherwise a
// generic message suitable for display.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "The request could not be completed. Please try again."
}
