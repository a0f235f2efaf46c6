// Package apperror defines the error taxonomy shared by every feature.
// Usecases build their sentinel errors from it, and the HTTP layer maps
// the Kind of an error to a status code.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	// KindStorage is an underlying store failure. It is also the kind of any
	// error that does not carry a Kind.
	KindStorage Kind = iota
	// KindValidation is malformed or semantically invalid input.
	KindValidation
	// KindNotFound is a missing symbol, year, account or holding.
	KindNotFound
	// KindConflict is a uniqueness violation such as a duplicate account name.
	KindConflict
	// KindAuth is a missing or invalid API key.
	KindAuth
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	default:
		return "storage"
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an Error of the given kind around err.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Storage wraps a store failure with the name of the operation that failed.
// It returns nil when err is nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Message: "storage error in " + op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
// Errors without one are treated as KindStorage.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}
