package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the error shape every component failure is reduced to before
// it crosses the HTTP boundary. Status is the HTTP status the handler should
// respond with, Message is the user-facing text.
type APIError struct {
	Status  int
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NotAuthenticated means no valid session identity was present.
func NotAuthenticated() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "Not authenticated"}
}

// NoCredential means neither a stored token nor the fallback token exists.
func NoCredential() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: "No Todoist token available"}
}

// Validation means the caller omitted or malformed a required input field.
func Validation(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

// Upstream means the to-do service or model provider answered with a
// non-success status. The upstream status is embedded in the message so the
// client can see what actually happened.
func Upstream(action string, upstreamStatus int) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to %s: %d", action, upstreamStatus),
	}
}

// Model means the model call went through but produced no usable output.
func Model(msg string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: msg}
}

// Internal wraps any other failure as a plain 500.
func Internal(msg string, cause error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: msg, Cause: cause}
}

// From extracts the APIError from err, or wraps err as a generic 500 when it
// is not one. Handlers call this at the boundary so no error escapes without
// a status.
func From(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}
	return &APIError{Status: http.StatusInternalServerError, Message: "Internal server error", Cause: err}
}
