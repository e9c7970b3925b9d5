// Package validate checks a parsed .editorconfig document against the
// schema catalog and attaches diagnostics to its parse items.
//
// Every rule is keyed by an error code from package lint. Before a rule
// reports, the validator checks the code's enablement predicate against
// the current settings, the per-code disable list and the document's
// suppression comments. Rules about a property are skipped entirely when
// its keyword starts with an ignored prefix.
package validate

import (
	"log/slog"
	"sync/atomic"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/lint"
	"github.com/leapstack-labs/ecl/pkg/schema"
)

// Config configures a Validator.
type Config struct {
	// Catalog is the keyword catalog (optional, uses schema.Default if nil).
	Catalog *schema.Catalog
	// Settings controls rule enablement (optional, uses lint.DefaultSettings if nil).
	Settings *lint.Settings
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Validator runs the rule battery over documents. It is safe for
// concurrent use; settings may be swapped between runs.
type Validator struct {
	catalog  *schema.Catalog
	settings atomic.Pointer[lint.Settings]
	logger   *slog.Logger
}

// New creates a validator.
func New(cfg Config) *Validator {
	v := &Validator{
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
	}
	if v.catalog == nil {
		v.catalog = schema.Default()
	}
	if v.logger == nil {
		v.logger = slog.New(slog.DiscardHandler)
	}
	v.SetSettings(cfg.Settings)
	return v
}

// SetSettings replaces the settings used by subsequent runs.
func (v *Validator) SetSettings(s *lint.Settings) {
	if s == nil {
		s = lint.DefaultSettings()
	}
	v.settings.Store(s)
}

// Settings returns the settings used by the next run.
func (v *Validator) Settings() *lint.Settings {
	return v.settings.Load()
}

// Catalog returns the keyword catalog.
func (v *Validator) Catalog() *schema.Catalog {
	return v.catalog
}

// Validate clears and recomputes the diagnostics of the document's
// current snapshot, announces the pass to subscribers and returns the
// diagnostics in item order.
func (v *Validator) Validate(doc *document.Document) ([]core.DisplayError, error) {
	if doc == nil {
		return nil, document.ErrNilDocument
	}

	snap := doc.Snapshot()
	for _, item := range snap.Items {
		item.ClearErrors()
	}

	r := &run{
		v:        v,
		doc:      doc,
		snap:     snap,
		settings: v.Settings(),
	}
	for _, rule := range rules {
		rule(r)
	}

	errs := snap.Errors()
	v.logger.Debug("validated document", "path", doc.Path(), "generation", snap.Generation, "errors", len(errs))
	doc.NotifyValidated(snap)
	return errs, nil
}

// rules run in order; each may report several codes.
var rules = []func(*run){
	checkUnknownElements,
	checkRoot,
	checkSections,
	checkDuplicateSections,
	checkDuplicateProperties,
	checkParentDuplicates,
	checkProperties,
	checkIndentation,
	checkNaming,
	checkGlobbing,
}

// run holds the state of one validation pass.
type run struct {
	v        *Validator
	doc      *document.Document
	snap     *document.Snapshot
	settings *lint.Settings
}

// enabled reports whether e may fire in this run.
func (r *run) enabled(e *lint.Error) bool {
	return e.IsEnabled(r.settings) && !r.snap.IsSuppressed(e.Code)
}

// report attaches e to item if the code is enabled and not suppressed.
func (r *run) report(item *core.ParseItem, e *lint.Error, args ...any) {
	if item == nil || !r.enabled(e) {
		return
	}
	pos := r.snap.Position(item.Span.Start)
	item.AddError(e.Display(pos.Line, pos.Column, args...))
}

// ignored reports whether rules about p are skipped.
func (r *run) ignored(p *core.Property) bool {
	return r.settings.IsIgnoredKeyword(p.Name())
}
