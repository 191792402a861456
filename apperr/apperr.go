package apperr

import (
	"errors"
	"fmt"
)

// Error codes for the recoverable failure kinds the request layer maps to
// fixed responses.
const (
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeDenied         = "PERMISSION_DENIED"
	CodeNotFound       = "CONTENT_NOT_FOUND"
	CodeUnavailable    = "DEPENDENCY_UNAVAILABLE"
)

// Error is a typed application error carrying a code and an optional cause.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Authentication signals a missing or invalid session.
func Authentication(message string) *Error {
	return &Error{Code: CodeAuthentication, Message: message}
}

// Denied signals that the viewer is authenticated but not allowed to see
// the specific content. Distinct from NotFound: "exists but hidden" is not
// "does not exist".
func Denied(message string) *Error {
	return &Error{Code: CodeDenied, Message: message}
}

// NotFound signals that the requested user or content does not exist.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Unavailable wraps a store or cache connectivity failure.
func Unavailable(message string, err error) *Error {
	return &Error{Code: CodeUnavailable, Message: message, Err: err}
}

// CodeOf returns the code of err if it is (or wraps) an *Error, else "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
