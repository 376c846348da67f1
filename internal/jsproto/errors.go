package jsproto

import "fmt"

// TypeError, RangeError and URIError are the non-ReferenceError exception
// kinds spec §7 requires the interpreter to be able to raise. ReferenceError
// itself lives in jsenv (it is raised purely from scope resolution).

type TypeError struct{ Message string }

func (e *TypeError) Error() string { return e.Message }

func NewTypeError(format string, args ...any) error {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

type RangeError struct{ Message string }

func (e *RangeError) Error() string { return e.Message }

func NewRangeError(format string, args ...any) error {
	return &RangeError{Message: fmt.Sprintf(format, args...)}
}

type URIError struct{ Message string }

func (e *URIError) Error() string { return e.Message }

func NewURIError(format string, args ...any) error {
	return &URIError{Message: fmt.Sprintf(format, args...)}
}
