// Package errors provides structured error types for the Causeway
// application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map to the failure classes of the layout engine and its
// surroundings: configuration errors fail fast before any layout work,
// data errors are tolerated defensively, solver errors propagate to
// the caller without retry.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfig, "unknown algorithm: %s", name)
//	if errors.Is(err, errors.ErrCodeConfig) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSolver, origErr, "layered layout")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// ErrCodeConfig marks configuration errors (unknown algorithm
	// names, negative spacing). These are programmer errors and fail
	// fast before any layout work begins.
	ErrCodeConfig Code = "CONFIG_ERROR"

	// ErrCodeData marks data-shape errors in diagram documents
	// (duplicate IDs, unparseable source files). Dangling edge
	// endpoints are NOT reported through this code at layout time -
	// the engine skips those edges defensively.
	ErrCodeData Code = "DATA_ERROR"

	// ErrCodeSolver marks external layout-solver failures. Propagated
	// to the caller as-is; retry or strategy fallback is caller policy.
	ErrCodeSolver Code = "SOLVER_ERROR"

	// ErrCodeNotFound marks missing resources (documents, nodes).
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeStore marks document-store failures.
	ErrCodeStore Code = "STORE_ERROR"

	// ErrCodeRender marks render and format-conversion failures.
	ErrCodeRender Code = "RENDER_ERROR"

	// ErrCodeNetwork marks remote source fetch failures.
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// ErrCodeInternal marks unexpected internal errors.
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
