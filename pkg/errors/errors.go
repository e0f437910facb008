// Package errors provides structured error types for bricklayer.
//
// Every failure that leaves a generator, the planner or the codec carries a
// machine-readable [Code] so that the CLI and the HTTP server can report it
// consistently without string matching.
//
// # Error Codes
//
//   - TILING_INFEASIBLE: the wall cannot be expressed as whole courses, or a
//     course remainder matches no closing combination
//   - GENERATION_EXHAUSTED: the wild bond ran out of retries
//   - UNSUPPORTED_BOND: no generator is registered for the requested bond
//   - INVALID_*: malformed configuration, text input or instructions
//   - INTERNAL_ERROR: a broken invariant inside bricklayer itself
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTilingInfeasible, "remaining width %g", r)
//	if errors.Is(err, errors.ErrCodeTilingInfeasible) {
//	    // pick other dimensions
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Pattern generation failures
	ErrCodeTilingInfeasible    Code = "TILING_INFEASIBLE"
	ErrCodeGenerationExhausted Code = "GENERATION_EXHAUSTED"
	ErrCodeUnsupportedBond     Code = "UNSUPPORTED_BOND"

	// Input validation errors
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"
	ErrCodeInvalidInstructions Code = "INVALID_INSTRUCTIONS"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsGenerationFailure reports whether err is one of the three terminal
// pattern generation failures.
func IsGenerationFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeTilingInfeasible, ErrCodeGenerationExhausted, ErrCodeUnsupportedBond:
		return true
	}
	return false
}
