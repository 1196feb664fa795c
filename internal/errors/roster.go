// Package errors provides error types for roster.
// This file contains roster and CSV related errors.
package errors

import (
	"fmt"
	"strconv"
)

// DuplicateError reports an attempt to add a person that is already present.
type DuplicateError struct {
	// Name is the full name of the person.
	Name string
	// Line is the 1-based CSV line number, or 0 when not raised by an import.
	Line int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("the person %s already exists in the table", e.Name)
}

// Is matches ErrDuplicate.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// MalformedLineError reports a CSV line that did not split into three fields.
type MalformedLineError struct {
	// Line is the 1-based line number in the source.
	Line int
	// Raw is the line exactly as read.
	Raw string
	// Fields is the number of fields the line split into.
	Fields int
}

func (e *MalformedLineError) Error() string {
	return "invalid line format - " + e.Raw
}

// Is matches ErrMalformedLine.
func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// InvalidAgeError reports a CSV line whose age field is not an integer.
type InvalidAgeError struct {
	// Line is the 1-based line number in the source.
	Line int
	// Raw is the line exactly as read.
	Raw string
	// Value is the age field that failed to parse.
	Value string
	// Cause is the parse error.
	Cause error
}

func (e *InvalidAgeError) Error() string {
	return "age must be a valid number on line - " + e.Raw
}

// Unwrap returns the parse error.
func (e *InvalidAgeError) Unwrap() error {
	return e.Cause
}

// Is matches ErrInvalidAge.
func (e *InvalidAgeError) Is(target error) bool {
	return target == ErrInvalidAge
}

// Duplicate creates a DuplicateError for a person added outside an import.
func Duplicate(name string) *DuplicateError {
	return &DuplicateError{Name: name}
}

// MalformedLine creates a MalformedLineError.
func MalformedLine(line int, raw string, fields int) *MalformedLineError {
	return &MalformedLineError{Line: line, Raw: raw, Fields: fields}
}

// InvalidAge creates an InvalidAgeError.
func InvalidAge(line int, raw, value string, cause error) *InvalidAgeError {
	return &InvalidAgeError{Line: line, Raw: raw, Value: value, Cause: cause}
}

// NotFound creates an error for a person or slot missing from the roster.
func NotFound(what string) *RosterError {
	return &RosterError{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("not in the roster: %s", what),
		Details: map[string]string{
			"target": what,
		},
		Suggestion: "Select a person in the table first.",
	}
}

// IOFault wraps a stream failure during import or export.
func IOFault(op, path string, cause error) *RosterError {
	err := &RosterError{
		Kind:    ErrIO,
		Message: fmt.Sprintf("error %s the data", op),
		Cause:   cause,
		Details: map[string]string{
			"operation": op,
		},
	}
	if path != "" {
		err.Details["path"] = path
	}
	return err
}

// LineOf returns the source line number carried by an import problem, or 0.
func LineOf(err error) int {
	var dup *DuplicateError
	var mal *MalformedLineError
	var age *InvalidAgeError
	switch {
	case As(err, &mal):
		return mal.Line
	case As(err, &age):
		return age.Line
	case As(err, &dup):
		return dup.Line
	default:
		return 0
	}
}

// Describe prefixes an import problem with its line number when known.
func Describe(err error) string {
	if n := LineOf(err); n > 0 {
		return "line " + strconv.Itoa(n) + ": " + err.Error()
	}
	return err.Error()
}
