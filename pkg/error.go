package pkg

import (
	"fmt"
	"strings"
)

// Error is a flat chain of errors in append order.
// It satisfies the multi-error Unwrap convention, so errors.Is and
// errors.As see every error appended to the chain.
type Error []error

// ErrReadStdin is returned when reading from standard input fails.
// Wrap the underlying I/O error onto it before returning.
var ErrReadStdin = MakeErrorf("failed to read stdin")

// ErrReadInput is returned when reading an input source fails.
// Wrap the underlying I/O error onto it before returning.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrParse is returned when compiling a template fails.
// The wrapped syntax error carries the source position.
var ErrParse = MakeErrorf("parse error")

// ErrInvalidTemplate is returned when a template fails validation.
// The wrapped findings name missing levels and unknown colors or styles.
var ErrInvalidTemplate = MakeErrorf("invalid template")

// MakeError constructs an Error from the given errors, flattening any
// nested chains. Nil errors are skipped; if nothing remains, the result
// is nil.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err == nil {
			continue
		}

		e = append(e, UnwrapErrors(err)...)
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins every error in the chain with ": ".
func (e Error) Error() string {
	msgs := make([]string, len(e))

	for i, err := range e {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, ": ")
}

// Wrap appends errs to the chain.
func (e Error) Wrap(errs ...error) Error {
	return append(e, errs...)
}

// Wrapf appends a formatted error to the chain.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(e, fmt.Errorf(format, args...))
}

// Unwrap exposes the chain for errors.Is and errors.As traversal.
func (e Error) Unwrap() []error { return e }

// UnwrapErrors flattens an error chain into a slice, innermost first,
// ending with err itself.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	var chain Error

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}

	case interface{ Unwrap() error }:
		chain = UnwrapErrors(e.Unwrap())
	}

	return append(chain, err)
}
