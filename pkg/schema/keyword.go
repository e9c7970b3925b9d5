package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Category groups keywords by the language or tool that consumes them.
type Category int

// Keyword categories, derived from the keyword name prefix.
const (
	CategoryStandard Category = iota
	CategoryDotNet
	CategoryCSharp
	CategoryVisualBasic
	CategoryCPP
	CategoryIDE
)

var categoryNames = [...]string{
	CategoryStandard:    "Standard",
	CategoryDotNet:      "DotNet",
	CategoryCSharp:      "CSharp",
	CategoryVisualBasic: "VisualBasic",
	CategoryCPP:         "CPP",
	CategoryIDE:         "IDE",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, ok := ParseCategory(string(text))
	if !ok {
		return fmt.Errorf("unknown keyword category %q", text)
	}
	*c = parsed
	return nil
}

// ParseCategory parses a category name such as "csharp" or "DotNet".
func ParseCategory(s string) (Category, bool) {
	normalized := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	for i, name := range categoryNames {
		if strings.ToLower(name) == normalized {
			return Category(i), true
		}
	}
	switch normalized {
	case "cs", "c#":
		return CategoryCSharp, true
	case "vb":
		return CategoryVisualBasic, true
	case "c++":
		return CategoryCPP, true
	}
	return CategoryStandard, false
}

// CategoryOf returns the category implied by a keyword name.
func CategoryOf(name string) Category {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "csharp_"):
		return CategoryCSharp
	case strings.HasPrefix(lower, "dotnet_"):
		return CategoryDotNet
	case strings.HasPrefix(lower, "visual_basic_"):
		return CategoryVisualBasic
	case strings.HasPrefix(lower, "cpp_"):
		return CategoryCPP
	case strings.HasPrefix(lower, "spelling_"):
		return CategoryIDE
	default:
		return CategoryStandard
	}
}

// Value placeholders accepted in a keyword's value list.
const (
	PlaceholderInteger = "<integer>"
	PlaceholderText    = "<text>"
)

// BuiltinSource labels keywords loaded from the embedded schema.
const BuiltinSource = "builtin"

// Keyword describes one .editorconfig property.
type Keyword struct {
	Name                   string   `json:"name"`
	Description            string   `json:"description,omitempty"`
	Values                 []string `json:"values,omitempty"`
	DefaultValues          []string `json:"default_values,omitempty"`
	IsSupported            bool     `json:"supported"`
	IsVisible              bool     `json:"visible"`
	SupportsMultipleValues bool     `json:"multiple,omitempty"`
	RequiresSeverity       bool     `json:"requires_severity,omitempty"`
	DefaultSeverity        string   `json:"default_severity,omitempty"`
	DocumentationLink      string   `json:"documentation_link,omitempty"`
	Example                string   `json:"example,omitempty"`
	Category               Category `json:"category"`
	Source                 string   `json:"source"`

	// Pattern is the declared name shape for keywords that belong to a
	// family such as dotnet_diagnostic.<id>.severity. Empty otherwise.
	Pattern string `json:"pattern,omitempty"`
}

// IsFamily reports whether the keyword was matched through a name shape.
func (k Keyword) IsFamily() bool {
	return k.Pattern != ""
}

// IsValidValue reports whether a single value token is allowed. Keywords
// without a value list accept anything.
func (k Keyword) IsValidValue(value string) bool {
	if len(k.Values) == 0 {
		return true
	}
	value = strings.TrimSpace(value)
	for _, allowed := range k.Values {
		switch allowed {
		case PlaceholderText:
			return true
		case PlaceholderInteger:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				return true
			}
		default:
			if strings.EqualFold(allowed, value) {
				return true
			}
		}
	}
	return false
}

// InvalidValues returns the tokens of value that the keyword does not
// accept. Multi-value keywords check each comma-separated token.
func (k Keyword) InvalidValues(value string) []string {
	tokens := []string{value}
	if k.SupportsMultipleValues {
		tokens = strings.Split(value, ",")
	}

	var invalid []string
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" && k.SupportsMultipleValues {
			continue
		}
		if !k.IsValidValue(tok) {
			invalid = append(invalid, tok)
		}
	}
	return invalid
}

// DefaultValue renders the default values as property text.
func (k Keyword) DefaultValue() string {
	return strings.Join(k.DefaultValues, ",")
}

// Severity is one entry of the severity vocabulary.
type Severity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
