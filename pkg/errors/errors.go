// Package errors provides structured error types for boothtree.
//
// Every failure in the synthesizer is synchronous and fatal to the build that
// raised it, so callers mostly need to know which category an error belongs
// to: a bad configuration, an out-of-range diagnostic query, or a broken
// reduction invariant. Codes make that category machine-readable for the CLI
// and the HTTP API.
//
// # Error Codes
//
//   - INVALID_*: configuration and input validation failures
//   - OUT_OF_RANGE: a row or column index outside the layout
//   - PRECONDITION_FAILED, NO_CONVERGENCE: internal reduction defects
//   - NOT_FOUND, INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "width %d is below %d", w, 4)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // reject the request
//	}
//
//	err := errors.Wrap(errors.ErrCodeInternal, cause, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration and input errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Diagnostic query errors
	ErrCodeOutOfRange Code = "OUT_OF_RANGE"

	// Reduction defects
	ErrCodePrecondition  Code = "PRECONDITION_FAILED"
	ErrCodeNoConvergence Code = "NO_CONVERGENCE"

	// Everything else
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsDefect reports whether err signals a broken reduction invariant rather
// than a caller mistake.
func IsDefect(err error) bool {
	switch GetCode(err) {
	case ErrCodePrecondition, ErrCodeNoConvergence, ErrCodeInternal:
		return true
	}
	return false
}
