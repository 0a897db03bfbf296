package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error so controllers can map it to a stable HTTP status
// and callers can react without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindCapacity
	KindForbidden
	KindNotFound
	KindTransient
)

// Error is the typed error returned by all core services.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string // offending/missing fields for validation errors
	Err     error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a user-correctable input error. Missing or malformed
// field names may be attached so the caller can surface them.
func Validation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Conflict creates an invariant-violation error (double booking, duplicate
// join, duplicate cancel).
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Capacity creates a roster-full error.
func Capacity(message string) *Error {
	return &Error{Kind: KindCapacity, Message: message}
}

// Forbidden creates an error for an actor lacking rights over the resource.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound creates an error for an absent referenced entity.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Transient wraps a store or collaborator failure that the caller may retry.
func Transient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain, KindUnknown if untyped.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status code controllers should respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict, KindCapacity:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
