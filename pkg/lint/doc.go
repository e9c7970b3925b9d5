// Package lint defines the error catalog and validation settings of ecl.
//
// # Error Catalog
//
// Every diagnostic the validator can emit is a static Error with a stable
// code (EC101..EC121), a category and a message template:
//
//	err, ok := lint.TryGetErrorCode("EC112")
//	msg := err.Format("indent_sise")
//
// Lookups are exact and case-sensitive. The catalog is built once and is
// read-only afterwards.
//
// # Error Groups
//
//   - syntax: malformed lines and section headers
//   - schema: keywords, values and severities checked against the schema
//   - duplicates: repeated sections and properties, including inherited ones
//   - style: redundant or suspicious but legal declarations
//   - naming: .NET naming rule, symbols and style references
//
// # Settings
//
// Settings enable or disable rule families and list ignored keyword prefixes.
// Enablement predicates are evaluated against the Settings value passed to
// each validation run, never cached:
//
//	settings := lint.DefaultSettings()
//	settings.Disable("EC114")
//	if lint.GlobbingNoMatch.IsEnabled(settings) { ... }
package lint
