// Package apperr classifies failures so handlers can pick between an inline
// message, a redirect and the generic error page.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindAuth
	KindNotFound
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// Sentinels for errors.Is checks.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("not authorized")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store failure")
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindConflict:
		return ErrConflict
	case KindAuth:
		return ErrAuth
	case KindNotFound:
		return ErrNotFound
	case KindStore:
		return ErrStore
	}
	return nil
}

// Error carries a kind, a stable code for logs and a user-facing message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func (e *Error) Is(target error) bool { return target == e.Kind.sentinel() }
func (e *Error) Unwrap() error        { return e.Err }

func Validation(code, msg string) error { return &Error{Kind: KindValidation, Code: code, Message: msg} }
func Conflict(code, msg string) error   { return &Error{Kind: KindConflict, Code: code, Message: msg} }
func Auth(code, msg string) error       { return &Error{Kind: KindAuth, Code: code, Message: msg} }
func NotFound(code string) error        { return &Error{Kind: KindNotFound, Code: code} }

// Store wraps a collaborator failure. The cause is for logs only.
func Store(code string, err error) error {
	return &Error{Kind: KindStore, Code: code, Message: GenericMessage, Err: err}
}

// GenericMessage is what users see for store failures.
const GenericMessage = "Something went wrong. Please try again."

// KindOf returns the kind of err, or KindStore for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStore
}

// Message returns the user-facing text for err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return GenericMessage
}

// CodeOf returns the code of err, or "" if it is not an *Error.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsAuth(err error) bool       { return errors.Is(err, ErrAuth) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsStore(err error) bool      { return errors.Is(err, ErrStore) }
