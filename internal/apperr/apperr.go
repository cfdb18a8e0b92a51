package apperr

import (
	"errors"
	"net/http"
)

// Code classifies an error and carries the HTTP status it maps to.
type Code struct {
	Name   string
	Status int
}

var (
	CodeBadRequest   = Code{"bad_request", http.StatusBadRequest}
	CodeUnauthorized = Code{"unauthorized", http.StatusUnauthorized}
	CodeForbidden    = Code{"forbidden", http.StatusForbidden}
	CodeNotFound     = Code{"not_found", http.StatusNotFound}
	// Duplicates are reported as 400; existing clients branch on it.
	CodeConflict     = Code{"conflict", http.StatusBadRequest}
	CodeTooLarge     = Code{"payload_too_large", http.StatusRequestEntityTooLarge}
	CodeUnavailable  = Code{"unavailable", http.StatusServiceUnavailable}
	CodeInternal     = Code{"internal_server_error", http.StatusInternalServerError}
)

// Error is a client-facing failure. Message is safe to return to callers; the
// wrapped Err is only logged.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error without an underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an error that keeps err for logging and errors.Is checks.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *Error   { return New(CodeBadRequest, message) }
func Unauthorized(message string) *Error { return New(CodeUnauthorized, message) }
func Forbidden(message string) *Error    { return New(CodeForbidden, message) }
func NotFound(message string) *Error     { return New(CodeNotFound, message) }
func Conflict(message string) *Error     { return New(CodeConflict, message) }

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	ae, ok := As(err)
	return ok && ae.Code == code
}
