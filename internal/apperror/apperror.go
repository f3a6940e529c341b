// Package apperror defines the error taxonomy shared by handlers and
// middleware. Each error carries a client-safe message and, optionally, the
// underlying cause, which is logged but never written to the response.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// Internal is an unexpected store, hash or token fault.
	Internal Kind = iota
	// BadRequest is missing or invalid input. It never touches storage.
	BadRequest
	// Conflict is a uniqueness violation.
	Conflict
	// Unauthorized means no credentials were presented.
	Unauthorized
	// Forbidden means the presented credentials were rejected.
	Forbidden
	// NotFound covers absent resources and resources owned by someone else.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case Conflict:
		return "conflict"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the application error type.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case BadRequest:
		return http.StatusBadRequest
	case Conflict:
		// Duplicate registrations have always been reported as 400.
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New builds an error of kind with a client-safe message and optional cause.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewBadRequest reports invalid or missing input.
func NewBadRequest(message string) *Error {
	return New(BadRequest, message, nil)
}

// NewConflict reports a uniqueness violation.
func NewConflict(message string, err error) *Error {
	return New(Conflict, message, err)
}

// NewUnauthorized reports absent credentials.
func NewUnauthorized(message string) *Error {
	return New(Unauthorized, message, nil)
}

// NewForbidden reports rejected credentials.
func NewForbidden(message string, err error) *Error {
	return New(Forbidden, message, err)
}

// NewNotFound reports a missing resource or one owned by another user.
func NewNotFound(message string, err error) *Error {
	return New(NotFound, message, err)
}

// NewInternal reports an unexpected fault. err is logged, never returned to clients.
func NewInternal(message string, err error) *Error {
	return New(Internal, message, err)
}

// As extracts an *Error from err's chain. Errors of any other type are
// reported as Internal with a generic message.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("Internal server error", err)
}
