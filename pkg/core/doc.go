// Package core defines the shared document model of the ecl system.
//
// This package contains:
//   - Parse items (the flat token stream of a .editorconfig file)
//   - Properties and sections (the structured tree built on top of the items)
//   - Display errors and their categories (validation results attached to items)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
