// Package errors provides structured error types for formgrid.
//
// Every failure the core reports to a caller carries a machine-readable
// [Code], so that hosts (CLI, terminal designer, embedding applications) can
// branch on the kind of failure without string matching.
//
// # Error Codes
//
//   - NOT_FOUND: a referenced row, column, field or type key is absent
//   - CAPACITY_EXCEEDED: the 12-unit grid cannot take another column
//   - DUPLICATE: a singleton (root element, renderer name) already exists
//   - VALIDATION_FAILED: malformed snapshot or registry data
//   - UNKNOWN_RENDERER: no strategy registered under the requested name
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "row %q not found", id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Handle missing node
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeValidation, origErr, "decode snapshot")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Tree mutation errors
	ErrCodeNotFound  Code = "NOT_FOUND"
	ErrCodeCapacity  Code = "CAPACITY_EXCEEDED"
	ErrCodeDuplicate Code = "DUPLICATE"

	// Data errors
	ErrCodeValidation   Code = "VALIDATION_FAILED"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Renderer errors
	ErrCodeUnknownRenderer Code = "UNKNOWN_RENDERER"

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

// NotFound is shorthand for New(ErrCodeNotFound, ...).
func NotFound(format string, args ...any) *Error {
	return New(ErrCodeNotFound, format, args...)
}

// Capacity is shorthand for New(ErrCodeCapacity, ...).
func Capacity(format string, args ...any) *Error {
	return New(ErrCodeCapacity, format, args...)
}

// Duplicate is shorthand for New(ErrCodeDuplicate, ...).
func Duplicate(format string, args ...any) *Error {
	return New(ErrCodeDuplicate, format, args...)
}
