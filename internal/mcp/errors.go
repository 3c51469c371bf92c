package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aki/keybit/internal/core/keyway"
)

// ErrorWithSuggestions represents an error with tool suggestions
type ErrorWithSuggestions struct {
	Message     string
	Suggestions []string
}

// Error returns the error message with suggestions
func (e *ErrorWithSuggestions) Error() string {
	if len(e.Suggestions) == 0 {
		return e.Message
	}

	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString("\n\nDid you mean to use one of these instead?\n")
	for _, suggestion := range e.Suggestions {
		sb.WriteString("  - ")
		sb.WriteString(suggestion)
		sb.WriteString("\n")
	}
	return sb.String()
}

// NewErrorWithSuggestions creates a new error with tool suggestions
func NewErrorWithSuggestions(message string, suggestions ...string) error {
	return &ErrorWithSuggestions{
		Message:     message,
		Suggestions: suggestions,
	}
}

// KeywayNotFoundError turns a table lookup failure into an error listing
// the closest keyway names
func KeywayNotFoundError(err error) error {
	var notFound *keyway.ErrKeywayNotFound
	if !errors.As(err, &notFound) {
		return err
	}
	suggestions := make([]string, 0, len(notFound.Suggestions)+1)
	for _, name := range notFound.Suggestions {
		suggestions = append(suggestions, fmt.Sprintf("keyway_show(name: %q)", name))
	}
	suggestions = append(suggestions, "keyway_list - List every known keyway")
	return NewErrorWithSuggestions(fmt.Sprintf("keyway not found: %s", notFound.Name), suggestions...)
}

// SessionNotFoundError returns an error with suggestions for when a session is not found
func SessionNotFoundError(ref string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("session not found: %s", ref),
		"session_list - List open sessions",
		"session_open - Open a new session",
	)
}

// MatchUnavailableError explains why a search was refused
func MatchUnavailableError(reason string) error {
	return NewErrorWithSuggestions(
		reason,
		"Enter more known depths, or leave fewer positions unread",
		"bitting_analyze - Check the combination count first",
	)
}

// InvalidParameterError returns an error with suggestions for invalid parameters
func InvalidParameterError(param string, expected string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("invalid %s: expected %s", param, expected),
		"Use the tool descriptions to understand parameter requirements",
	)
}
