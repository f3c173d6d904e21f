package apperr

import (
	"fmt"
)

// Error ties an adapter sentinel to the driver error that caused it.
// errors.Is matches both; errors.Cause returns the driver error.
type Error struct {
	kind  error
	cause error
	msg   string
}

// Wrap returns an error of the given kind caused by cause. It returns nil when cause is nil.
func Wrap(kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{kind: kind, cause: cause}
}

// Wrapf is Wrap with a context message placed between kind and cause.
func Wrapf(kind, cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return &Error{kind: kind, cause: cause, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.kind.Error() + ": " + e.cause.Error()
	}
	return e.kind.Error() + ": " + e.msg + ": " + e.cause.Error()
}

// Kind returns the sentinel.
func (e *Error) Kind() error { return e.kind }

// Cause returns the driver error.
func (e *Error) Cause() error { return e.cause }

// Unwrap exposes both errors to errors.Is and errors.As.
func (e *Error) Unwrap() []error { return []error{e.kind, e.cause} }
