// Package errors provides a lightweight structured error type (PyBuilderError)
// for category-based classification and retry semantics across the build core and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a PyBuilder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryManifest   ErrorCategory = "manifest"

	// Build and processing errors
	CategoryBackend     ErrorCategory = "backend"
	CategoryBuild       ErrorCategory = "build"
	CategoryEnvironment ErrorCategory = "environment"
	CategoryFileSystem  ErrorCategory = "filesystem"
	CategoryLint        ErrorCategory = "lint"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryDaemon   ErrorCategory = "daemon"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// PyBuilderError is a structured error with category, retryability, and context
type PyBuilderError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PyBuilderError
type ContextFields map[string]any

// Error implements the error interface
func (e *PyBuilderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *PyBuilderError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PyBuilderError) WithContext(key string, value any) *PyBuilderError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new PyBuilderError
func New(category ErrorCategory, severity ErrorSeverity, message string) *PyBuilderError {
	return &PyBuilderError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new PyBuilderError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PyBuilderError {
	return &PyBuilderError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// WrapRetryable creates a new retryable PyBuilderError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *PyBuilderError {
	return &PyBuilderError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if pbe, ok := err.(*PyBuilderError); ok {
		return pbe.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if pbe, ok := err.(*PyBuilderError); ok {
		return pbe.Retryable
	}
	return false
}
