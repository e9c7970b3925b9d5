package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// ErrorCategory
// =============================================================================

// ErrorCategory indicates the importance of a validation diagnostic.
type ErrorCategory int

// Error categories, most severe first.
const (
	// CategoryError indicates a problem that blocks correctness.
	CategoryError ErrorCategory = iota
	// CategoryWarning indicates a likely mistake that is tolerated.
	CategoryWarning
	// CategorySuggestion indicates a style or best-practice improvement.
	CategorySuggestion
)

// String returns the string representation of the category.
func (c ErrorCategory) String() string {
	switch c {
	case CategoryError:
		return "error"
	case CategoryWarning:
		return "warning"
	case CategorySuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c ErrorCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ErrorCategory) UnmarshalText(text []byte) error {
	parsed, ok := ParseCategory(string(text))
	if !ok {
		return fmt.Errorf("unknown error category %q", text)
	}
	*c = parsed
	return nil
}

// ParseCategory converts a string to an ErrorCategory value.
// Returns the category and true if valid, or CategoryWarning and false if invalid.
func ParseCategory(s string) (ErrorCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return CategoryError, true
	case "warning":
		return CategoryWarning, true
	case "suggestion", "hint", "info":
		return CategorySuggestion, true
	default:
		return CategoryWarning, false
	}
}
