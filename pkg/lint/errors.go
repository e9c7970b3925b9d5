package lint

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/ecl/pkg/core"
)

// Error is a catalog entry describing one diagnostic.
type Error struct {
	Code     string             // Stable identifier, e.g. "EC101"
	Name     string             // Human-readable name, e.g. "syntax.unknown_element"
	Group    string             // Category, e.g. "syntax", "schema", "naming"
	Category core.ErrorCategory // Default category
	Template string             // fmt template for the description

	enabled func(s *Settings) bool
}

// Format renders the description with args.
func (e *Error) Format(args ...any) string {
	if len(args) == 0 {
		return e.Template
	}
	return fmt.Sprintf(e.Template, args...)
}

// IsEnabled evaluates the enablement predicate against s and the
// per-code disable list. A nil Settings uses the defaults.
func (e *Error) IsEnabled(s *Settings) bool {
	if s == nil {
		s = DefaultSettings()
	}
	if s.IsDisabled(e.Code) {
		return false
	}
	if e.enabled == nil {
		return true
	}
	return e.enabled(s)
}

// DocURL returns the documentation link of the error.
func (e *Error) DocURL() string {
	return BuildDocURL(e.Code)
}

// Display creates a DisplayError for the given position.
func (e *Error) Display(line, column int, args ...any) core.DisplayError {
	return core.DisplayError{
		Code:        e.Code,
		Category:    e.Category,
		Description: e.Format(args...),
		Line:        line,
		Column:      column,
	}
}

// Catalog entries.
var (
	UnknownElement = &Error{
		Code: "EC101", Name: "syntax.unknown_element", Group: "syntax",
		Category: core.CategoryError,
		Template: "Syntax error. Element %q is not valid at its current location",
	}
	RootInSection = &Error{
		Code: "EC102", Name: "syntax.root_in_section", Group: "syntax",
		Category: core.CategoryWarning,
		Template: "The root property must be the first property in the file and cannot appear in a section",
	}
	DuplicateProperty = &Error{
		Code: "EC103", Name: "duplicates.property", Group: "duplicates",
		Category: core.CategoryWarning,
		Template: "The property %q is overridden by a later declaration in the same section",
		enabled:  func(s *Settings) bool { return s.DuplicateProperties },
	}
	DuplicateSection = &Error{
		Code: "EC104", Name: "duplicates.section", Group: "duplicates",
		Category: core.CategoryWarning,
		Template: "The section %s is already declared earlier in the file",
		enabled:  func(s *Settings) bool { return s.DuplicateSections },
	}
	ParentDuplicateProperty = &Error{
		Code: "EC105", Name: "duplicates.parent_property", Group: "duplicates",
		Category: core.CategorySuggestion,
		Template: "The property %q is already declared with the same value in %s",
		enabled:  func(s *Settings) bool { return s.ParentDuplicates },
	}
	MissingValue = &Error{
		Code: "EC106", Name: "schema.missing_value", Group: "schema",
		Category: core.CategoryError,
		Template: "The property %q has no value",
	}
	UnknownValue = &Error{
		Code: "EC107", Name: "schema.unknown_value", Group: "schema",
		Category: core.CategoryWarning,
		Template: "%q is not a valid value for %q",
		enabled:  func(s *Settings) bool { return s.UnknownValues },
	}
	MissingSeverity = &Error{
		Code: "EC108", Name: "schema.missing_severity", Group: "schema",
		Category: core.CategoryError,
		Template: "The property %q requires a severity suffix, e.g. \":warning\"",
	}
	UnknownSeverity = &Error{
		Code: "EC109", Name: "schema.unknown_severity", Group: "schema",
		Category: core.CategoryWarning,
		Template: "%q is not a valid severity",
	}
	SeverityNotApplicable = &Error{
		Code: "EC110", Name: "schema.severity_not_applicable", Group: "schema",
		Category: core.CategoryError,
		Template: "The property %q does not support a severity suffix",
	}
	SectionSyntaxError = &Error{
		Code: "EC111", Name: "syntax.section", Group: "syntax",
		Category: core.CategoryError,
		Template: "Section header %s is not valid: %s",
	}
	UnknownKeyword = &Error{
		Code: "EC112", Name: "schema.unknown_keyword", Group: "schema",
		Category: core.CategoryWarning,
		Template: "The keyword %q is unknown",
		enabled:  func(s *Settings) bool { return s.UnknownProperties },
	}
	SpaceInSection = &Error{
		Code: "EC113", Name: "style.space_in_section", Group: "style",
		Category: core.CategorySuggestion,
		Template: "Section header %s contains a space, which is usually a typo",
		enabled:  func(s *Settings) bool { return !s.AllowSpacesInSections },
	}
	GlobbingNoMatch = &Error{
		Code: "EC114", Name: "style.globbing_no_match", Group: "style",
		Category: core.CategorySuggestion,
		Template: "The section %s does not match any file under %s",
		enabled:  func(s *Settings) bool { return s.Globbing },
	}
	TabWidthUnneeded = &Error{
		Code: "EC115", Name: "style.tab_width_unneeded", Group: "style",
		Category: core.CategorySuggestion,
		Template: "tab_width is not needed because indent_size has the same value",
	}
	IndentSizeUnneeded = &Error{
		Code: "EC116", Name: "style.indent_size_unneeded", Group: "style",
		Category: core.CategorySuggestion,
		Template: "indent_size is not needed when indent_style is tab; use tab_width instead",
	}
	UnknownNamingStyle = &Error{
		Code: "EC117", Name: "naming.unknown_style", Group: "naming",
		Category: core.CategoryError,
		Template: "The naming style %q is not declared; add dotnet_naming_style.%s.capitalization",
	}
	UnusedNamingStyle = &Error{
		Code: "EC118", Name: "naming.unused_style", Group: "naming",
		Category: core.CategorySuggestion,
		Template: "The naming style %q is never used by a naming rule",
	}
	NamingRuleReordered = &Error{
		Code: "EC119", Name: "naming.rule_reordered", Group: "naming",
		Category: core.CategoryWarning,
		Template: "The naming rule %q overlaps %q and is applied after it because %q is more specific",
	}
	UnsupportedKeyword = &Error{
		Code: "EC120", Name: "schema.unsupported_keyword", Group: "schema",
		Category: core.CategorySuggestion,
		Template: "The keyword %q is recognized but not supported by the .NET tooling",
		enabled:  func(s *Settings) bool { return s.UnknownProperties },
	}
	UnknownNamingSymbols = &Error{
		Code: "EC121", Name: "naming.unknown_symbols", Group: "naming",
		Category: core.CategoryError,
		Template: "The naming symbols %q are not declared; add dotnet_naming_symbols.%s.applicable_kinds",
	}
)

// catalog indexes all entries by code. Built once; read-only afterwards.
var catalog = buildCatalog(
	UnknownElement, RootInSection, DuplicateProperty, DuplicateSection,
	ParentDuplicateProperty, MissingValue, UnknownValue, MissingSeverity,
	UnknownSeverity, SeverityNotApplicable, SectionSyntaxError, UnknownKeyword,
	SpaceInSection, GlobbingNoMatch, TabWidthUnneeded, IndentSizeUnneeded,
	UnknownNamingStyle, UnusedNamingStyle, NamingRuleReordered,
	UnsupportedKeyword, UnknownNamingSymbols,
)

func buildCatalog(errs ...*Error) map[string]*Error {
	m := make(map[string]*Error, len(errs))
	for _, e := range errs {
		if _, dup := m[e.Code]; dup {
			panic("lint: duplicate error code " + e.Code)
		}
		m[e.Code] = e
	}
	return m
}

// TryGetErrorCode returns the catalog entry for code. The lookup is exact
// and case-sensitive.
func TryGetErrorCode(code string) (*Error, bool) {
	e, ok := catalog[code]
	return e, ok
}

// IsKnownCode reports whether code is a catalog entry.
func IsKnownCode(code string) bool {
	_, ok := catalog[code]
	return ok
}

// AllErrors returns every catalog entry ordered by code.
func AllErrors() []*Error {
	errs := make([]*Error, 0, len(catalog))
	for _, e := range catalog {
		errs = append(errs, e)
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Code < errs[j].Code })
	return errs
}

// ErrorsByGroup returns catalog entries in group ordered by code.
func ErrorsByGroup(group string) []*Error {
	var errs []*Error
	for _, e := range AllErrors() {
		if e.Group == group {
			errs = append(errs, e)
		}
	}
	return errs
}
