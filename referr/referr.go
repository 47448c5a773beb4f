// Package referr provides the error type used across durable-ref: every
// fallible operation in refuri, refcodec, refbackend and ref returns a
// referr.Error instead of the bare `error` interface, so callers get a
// typed Kind (the taxonomy of spec §7), a wrap chain for tracing, and the
// original cause for good measure.
package referr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riverford/durable-ref/reflog"
)

// Error is the interface every durable-ref operation returns on failure.
type Error interface {
	error
	Wrap(msg string) Error
	WrapWithLog(msg string, log reflog.Logger) Error
	Kind() Kind
	Unwrap() error
	UnwrapLastError() string
}

const (
	kindSeparate  = " | "
	errorSeparate = " -> "
)

// refError is the concrete implementation of Error.
type refError struct {
	kind      Kind
	cause     error
	traceback string
}

// FromError wraps an existing error with a Kind and a message.
func FromError(kind Kind, cause error, wrap string) Error {
	return &refError{
		kind:      kind,
		cause:     cause,
		traceback: fmt.Sprintf("%s: %v", wrap, cause),
	}
}

// FromErrorWithLog is FromError plus an immediate log line at Error level.
func FromErrorWithLog(kind Kind, cause error, wrap string, log reflog.Logger) Error {
	msg := fmt.Sprintf("%s: %v", wrap, cause)
	log.Error(msg)

	return &refError{
		kind:      kind,
		cause:     cause,
		traceback: msg,
	}
}

// FromString builds an Error from a plain message, with no pre-existing cause.
func FromString(kind Kind, msg string) Error {
	return &refError{
		kind:      kind,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// FromStringWithLog is FromString plus an immediate log line at Error level.
func FromStringWithLog(kind Kind, msg string, log reflog.Logger) Error {
	log.Error(msg)

	return &refError{
		kind:      kind,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// Error renders the kind and full traceback.
func (e *refError) Error() string {
	safetyCheck(&e)

	return fmt.Sprintf("%s%s%s", e.kind, kindSeparate, e.traceback)
}

// Unwrap returns the original cause, for errors.Is/errors.As.
func (e *refError) Unwrap() error {
	safetyCheck(&e)

	return e.cause
}

// UnwrapLastError returns only the most recent message of the traceback:
// the one added by the last Wrap call, or the construction message if the
// error was never wrapped.
func (e *refError) UnwrapLastError() string {
	safetyCheck(&e)

	traceback := []byte(e.traceback)

	end := strings.Index(e.traceback, errorSeparate)
	if end == -1 {
		return e.traceback
	}

	return string(traceback[:end])
}

// Wrap prepends msg to the traceback. Call this at every level that
// returns the error further up the stack.
func (e *refError) Wrap(msg string) Error {
	safetyCheck(&e)
	e.traceback = fmt.Sprintf("%s%s%s", msg, errorSeparate, e.traceback)

	return e
}

// WrapWithLog is Wrap plus an immediate log line at Error level.
func (e *refError) WrapWithLog(msg string, log reflog.Logger) Error {
	log.Error(msg)

	return e.Wrap(msg)
}

// Kind returns the error taxonomy entry for this error.
func (e *refError) Kind() Kind {
	safetyCheck(&e)

	return e.kind
}

// safetyCheck substitutes a teapot error if a nil *refError slipped through,
// rather than panicking on a nil-pointer method call.
func safetyCheck(err **refError) {
	if *err == nil {
		*err = &refError{
			kind:      KindBackendError,
			cause:     ErrTeapot,
			traceback: ErrTeapot.Error(),
		}
	}
}
