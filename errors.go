package esmapper

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrInvalidArgument ErrorKind = "invalid_argument"
	ErrNotFound        ErrorKind = "not_found"
	ErrInvalidState    ErrorKind = "invalid_state"
)

// Error every contract violation the registry raises carries a Kind so
// callers can branch without matching message text. There is no cause
// chain: builder and source failures propagate unwrapped.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, v...)}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
