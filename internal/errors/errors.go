// Package errors provides error types with actionable suggestions for the
// roster application. Errors carry a kind for errors.Is matching plus
// contextual details that the UI can show to the user.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrDuplicate indicates an equal person is already in the roster.
	ErrDuplicate = errors.New("duplicate person")
	// ErrNotFound indicates the person or slot is not in the roster.
	ErrNotFound = errors.New("not found")
	// ErrMalformedLine indicates a CSV line without exactly three fields.
	ErrMalformedLine = errors.New("malformed line")
	// ErrInvalidAge indicates a CSV age field that is not an integer.
	ErrInvalidAge = errors.New("invalid age")
	// ErrIO indicates the underlying stream failed during import or export.
	ErrIO = errors.New("i/o error")
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrValidation indicates user input that failed validation.
	ErrValidation = errors.New("validation error")
)

// RosterError is the base error type for roster errors.
// It wraps an underlying error and provides additional context.
type RosterError struct {
	// Kind is the category of error (e.g., ErrIO, ErrConfig).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., file path, line number).
	Details map[string]string
}

// Error implements the error interface.
func (e *RosterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *RosterError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether any error in err's chain matches the target.
func (e *RosterError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with details and suggestions.
func (e *RosterError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Details[k]))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *RosterError) WithDetails(key, value string) *RosterError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *RosterError) WithCause(cause error) *RosterError {
	e.Cause = cause
	return e
}

// New creates a new RosterError with the given kind and message.
func New(kind error, message string) *RosterError {
	return &RosterError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *RosterError {
	return &RosterError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion creates a new error with a suggestion.
func WithSuggestion(kind error, message, suggestion string) *RosterError {
	return &RosterError{
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Is is errors.Is, re-exported so callers importing this package under the
// name "errors" keep access to the standard helpers.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As, re-exported for the same reason as Is.
func As(err error, target any) bool {
	return errors.As(err, target)
}
