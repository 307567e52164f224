package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can tell engine problems from user mistakes.
type Kind string

const (
	KindConnection  Kind = "connection"
	KindQuery       Kind = "query"
	KindConstraint  Kind = "constraint"
	KindNotFound    Kind = "not_found"
	KindValidation  Kind = "validation"
	KindCardinality Kind = "cardinality"
)

// Error represents a typed domain error.
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors of the same kind and code, so sentinel comparisons survive Clone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// New creates a new Error instance.
func New(kind Kind, code string, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, kind Kind, code string, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrConnection  = New(KindConnection, "CONNECTION_FAILED", "database connection failed")
	ErrQuery       = New(KindQuery, "QUERY_FAILED", "query failed")
	ErrConstraint  = New(KindConstraint, "CONSTRAINT_VIOLATION", "constraint violation")
	ErrNotFound    = New(KindNotFound, "NOT_FOUND", "resource not found")
	ErrValidation  = New(KindValidation, "VALIDATION_ERROR", "validation failed")
	ErrCardinality = New(KindCardinality, "AMBIGUOUS_MATCH", "more than one row matched")
	ErrInUse       = New(KindConstraint, "IN_USE", "resource still referenced")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrQuery.Kind, ErrQuery.Code, ErrQuery.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// KindOf reports the kind of err, defaulting to KindQuery for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return FromError(err).Kind
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
