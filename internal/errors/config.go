// Package errors provides error types for roster.
// This file contains configuration-related errors.
package errors

import (
	"fmt"
	"strings"
)

// Configuration-related error constructors.

// ConfigNotFound creates an error for missing configuration.
func ConfigNotFound(configPath string) *RosterError {
	return &RosterError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("configuration file not found: %s", configPath),
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Create a default configuration:

    roster init

  Or run without one; built-in defaults are used.`,
	}
}

// ConfigParseError creates an error for YAML parsing failures.
func ConfigParseError(configPath string, parseErr error) *RosterError {
	return &RosterError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("failed to parse configuration: %s", configPath),
		Cause:   parseErr,
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Check your config.yaml for syntax errors:
  1. Ensure proper YAML indentation (use spaces, not tabs)
  2. Check for missing colons or quotes`,
	}
}

// ConfigValidationError creates an error for invalid configuration values.
func ConfigValidationError(field, message string, validOptions []string) *RosterError {
	suggestion := fmt.Sprintf("Fix the %q field in .roster/config.yaml", field)
	if len(validOptions) > 0 {
		suggestion += fmt.Sprintf("\n  Valid options: %s", strings.Join(validOptions, ", "))
	}

	return &RosterError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("invalid configuration: %s", message),
		Details: map[string]string{
			"field": field,
		},
		Suggestion: suggestion,
	}
}
