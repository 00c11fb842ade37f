// Package errors provides coded errors for drawboard configuration and I/O.
//
// Configuration errors are raised at the moment a value is applied, so a
// degenerate surface is never rendered:
//
//	if err := surf.SetSize(w, h); errors.Is(err, errors.ErrCodeInvalidSize) {
//	    // reject the input
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidSize   Code = "INVALID_SIZE"
	ErrCodeInvalidGrid   Code = "INVALID_GRID"
	ErrCodeInvalidShape  Code = "INVALID_SHAPE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeImageLoad     Code = "IMAGE_LOAD"
	ErrCodeExport        Code = "EXPORT"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

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

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the code from err, or "" if err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
