// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateName = errors.New("duplicate poll name")
	ErrNotFound      = errors.New("poll not found")
	ErrPollClosed    = errors.New("poll closed")
)

// Error is a rejected store operation. Msg is safe to show to callers and
// Kind is one of the sentinel errors above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err is one of the store's caller errors as
// opposed to a backend failure
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPollClosed)
}

func notFound(name string) *Error {
	return newError(ErrNotFound, "no poll with name '%s'", name)
}

func duplicateName(name string) *Error {
	return newError(ErrDuplicateName, "poll for '%s' already exists", name)
}
