// Package errors provides structured error types for the depsketch parsers.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each parse failure carries exactly one code identifying its kind, so
// callers can distinguish a missing fixture from a malformed one:
//
//	node, err := parser.ParseLiteral(def)
//	if errors.Is(err, errors.ErrCodeFormat) {
//	    // Fixture text is malformed
//	}
//
// All parse errors are fail-fast: the first error aborts the call and no
// partial structure is returned. They indicate fixture-authoring bugs, not
// transient conditions, so there is no retry machinery here.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// ErrCodeResourceNotFound indicates a named fixture resource does not exist.
	ErrCodeResourceNotFound Code = "RESOURCE_NOT_FOUND"

	// ErrCodeIO indicates a stream read or transfer failure while loading a resource.
	ErrCodeIO Code = "IO_ERROR"

	// ErrCodeFormat indicates malformed fixture text: a bad section header,
	// too few coordinate fields, a malformed tree prefix, a non-root first
	// line, or a duplicate node id.
	ErrCodeFormat Code = "FORMAT_ERROR"

	// ErrCodeUnresolvedReference indicates a back-reference to an id that
	// was never bound earlier in the document.
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"

	// ErrCodeSubstitution indicates more %s placeholders than supplied
	// substitution values.
	ErrCodeSubstitution Code = "SUBSTITUTION_ERROR"

	// ErrCodeInvalidInput indicates invalid caller input outside the fixture
	// text itself (e.g. an unsafe resource name).
	ErrCodeInvalidInput Code = "INVALID_INPUT"
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
