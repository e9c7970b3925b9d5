package core

import (
	"strings"

	"github.com/leapstack-labs/ecl/pkg/token"
)

// ItemKind classifies a ParseItem.
type ItemKind int

// Parse item kinds.
const (
	ItemComment ItemKind = iota
	ItemSection
	ItemKeyword
	ItemValue
	ItemSeverity
	ItemSuppression
	ItemUnknown
)

// String returns the kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemComment:
		return "comment"
	case ItemSection:
		return "section"
	case ItemKeyword:
		return "keyword"
	case ItemValue:
		return "value"
	case ItemSeverity:
		return "severity"
	case ItemSuppression:
		return "suppression"
	case ItemUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// DisplayError is a validation result attached to a ParseItem.
type DisplayError struct {
	Code        string        `json:"code"`
	Category    ErrorCategory `json:"category"`
	Description string        `json:"description"`
	Line        int           `json:"line"`
	Column      int           `json:"column"`
}

// ParseItem is an atomic lexical unit of a .editorconfig document.
// Kind, Span and Text never change after creation; Errors are
// attached by validation.
type ParseItem struct {
	Kind   ItemKind
	Span   token.Span
	Text   string
	Errors []DisplayError
}

// NewParseItem creates a parse item for text starting at offset start.
func NewParseItem(kind ItemKind, start int, text string) *ParseItem {
	return &ParseItem{
		Kind: kind,
		Span: token.Span{Start: start, Length: len(text)},
		Text: text,
	}
}

// HasErrors reports whether any error is attached.
func (p *ParseItem) HasErrors() bool {
	return len(p.Errors) > 0
}

// HasError reports whether an error with the given code is attached.
func (p *ParseItem) HasError(code string) bool {
	for _, e := range p.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// AddError attaches err unless an error with the same code is already present.
// Returns false when the code was already attached.
func (p *ParseItem) AddError(err DisplayError) bool {
	if p.HasError(err.Code) {
		return false
	}
	p.Errors = append(p.Errors, err)
	return true
}

// ClearErrors removes all attached errors.
func (p *ParseItem) ClearErrors() {
	p.Errors = nil
}

// Equal reports structural equality: same span and case-insensitive text.
func (p *ParseItem) Equal(other *ParseItem) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Span == other.Span && strings.EqualFold(p.Text, other.Text)
}

// String returns the item text.
func (p *ParseItem) String() string {
	return p.Text
}
