package apperr

import (
	"errors"
	"net/http"
)

// Kind is the closed set of failure categories the API can report.
type Kind string

const (
	Unauthorized     Kind = "unauthorized"
	ValidationFailed Kind = "validation_failed"
	NotFound         Kind = "not_found"
	Conflict         Kind = "conflict"
	Storage          Kind = "storage"
)

// Error carries a machine-readable kind plus a human message. The wrapped
// cause, when present, is for logs only and must never reach a response body.
type Error struct {
	Kind    Kind
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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err. Unknown errors count as Storage so that
// unexpected failures always surface as a generic server error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Storage
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the public message for err. Storage errors get a generic
// message; their detail belongs in logs.
func Message(err error) string {
	if KindOf(err) == Storage {
		return "internal server error"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// Status maps a kind to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case Unauthorized:
		return http.StatusUnauthorized
	case ValidationFailed:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
