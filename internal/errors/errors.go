// Package errors defines envpath's error taxonomy and its exit codes.
package errors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorCode identifies an error category.
type ErrorCode string

const (
	ErrUnknown              ErrorCode = "UNKNOWN"
	ErrUnexpected           ErrorCode = "UNEXPECTED"
	ErrValidation           ErrorCode = "VALIDATION"
	ErrAlreadyPresent       ErrorCode = "ALREADY_PRESENT"
	ErrNotPresent           ErrorCode = "NOT_PRESENT"
	ErrNotFound             ErrorCode = "NOT_FOUND"
	ErrElevationDenied      ErrorCode = "ELEVATION_DENIED"
	ErrElevationUnavailable ErrorCode = "ELEVATION_UNAVAILABLE"
	ErrRelayIO              ErrorCode = "RELAY_IO"
	ErrUnsupported          ErrorCode = "UNSUPPORTED"
)

// Process exit codes. An elevated child's exit code is propagated as is.
const (
	ExitOK                   = 0
	ExitUnexpected           = 1
	ExitValidation           = 2
	ExitAlreadyPresent       = 3
	ExitNotPresent           = 4
	ExitElevationDenied      = 5
	ExitElevationUnavailable = 6
)

// Error is a structured error with a code and optional details.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Format prints the cause chain, including pkg/errors stacks, for %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "[%s] %s", e.Code, e.Message)
		for k, v := range e.Details {
			fmt.Fprintf(s, "\n  %s: %v", k, v)
		}
		if e.Wrapped != nil {
			fmt.Fprintf(s, "\ncaused by: %+v", e.Wrapped)
		}
		return
	}
	_, _ = fmt.Fprint(s, e.Error())
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates an Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]interface{})}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err under code. Returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err under code with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Unexpected wraps err as UNEXPECTED and records a stack trace at the call
// site so a relayed child can print it.
func Unexpected(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return Wrap(pkgerrors.WithStack(err), ErrUnexpected, message)
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetErrorCode returns the code of err, or ErrUnknown for foreign errors.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec *ExitError
	if errors.As(err, &ec) {
		return ec.Code
	}
	switch GetErrorCode(err) {
	case ErrValidation, ErrUnsupported:
		return ExitValidation
	case ErrAlreadyPresent:
		return ExitAlreadyPresent
	case ErrNotPresent, ErrNotFound:
		return ExitNotPresent
	case ErrElevationDenied:
		return ExitElevationDenied
	case ErrElevationUnavailable:
		return ExitElevationUnavailable
	default:
		return ExitUnexpected
	}
}

// ExitError carries an exit code that has already been reported, typically
// the exit code of an elevated child whose output was relayed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Detail renders err with its full cause chain and any recorded stack.
func Detail(err error) string {
	return fmt.Sprintf("%+v", err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return errors.As(err, target) }
