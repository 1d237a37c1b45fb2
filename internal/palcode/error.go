package palcode

import (
	"errors"
	"fmt"
)

// Error pairs a stable [Code] with the operation that produced it and,
// where one exists, the underlying platform error. It replaces the classic
// thread-global last-error cell: the code travels with the result instead
// of through shared mutable state, so concurrent callers can never observe
// each other's failures.
type Error struct {
	Op   string
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("(%s) %s: %v", e.Op, e.Code, e.Err)
	}

	return fmt.Sprintf("(%s) %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports two pal errors as equal when their codes match, so callers can
// branch with [errors.Is] against a code-only template.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.Code == t.Code
}

// NewError constructs an [Error] without an underlying cause.
func NewError(op string, code Code) *Error {
	return &Error{Op: op, Code: code}
}

// CodeOf extracts the stable numeric code from an error chain. It returns
// zero for a nil error and [InvalidFunction] for errors that did not
// originate in this package, so a boundary adapter always has a scalar
// from the closed enumeration to hand across.
func CodeOf(err error) Code {
	if err == nil {
		return 0
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return InvalidFunction
}
