package picmix

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

// Error codes. Every failure is scoped to the call that triggered it; none
// leaves the scene half-mutated.
const (
	// Add was called with the picture list already at Config.Add.Count.
	ErrCodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	// Decoding a source or rotating a picture failed. Nothing was committed.
	ErrCodeDecodeFailure Code = "DECODE_FAILURE"
	// Encoding or writing an export failed. The result layer is still cleared.
	ErrCodeEncodeFailure Code = "ENCODE_FAILURE"

	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidScript Code = "INVALID_SCRIPT"
	ErrCodeUnsupported   Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there
// is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
