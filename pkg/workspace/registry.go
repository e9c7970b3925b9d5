// Package workspace tracks open documents and schedules their validation.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/leapstack-labs/ecl/pkg/document"
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Scheduler validates opened documents after each parse (optional).
	Scheduler *Scheduler
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Registry maps file paths to documents with an explicit open/close
// lifecycle. It also serves as the document loader, so ancestors resolved
// by several documents are shared.
type Registry struct {
	scheduler *Scheduler
	logger    *slog.Logger

	mu   sync.Mutex
	docs map[string]*entry
}

type entry struct {
	doc         *document.Document
	unsubscribe func()
	open        bool // opened explicitly rather than loaded as an ancestor

	ready     chan struct{} // closed once the first parse is published
	readyOnce sync.Once
}

func (r *Registry) newEntry(path string) *entry {
	return &entry{
		doc:   document.New(document.Config{Path: path, Loader: r, Logger: r.logger}),
		ready: make(chan struct{}),
	}
}

func (e *entry) markReady() {
	e.readyOnce.Do(func() { close(e.ready) })
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		scheduler: cfg.Scheduler,
		logger:    logger,
		docs:      make(map[string]*entry),
	}
}

func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Open registers the document at path, parses text synchronously and
// schedules validation. Opening a known path reparses it.
func (r *Registry) Open(path, text string) *document.Document {
	k := key(path)

	r.mu.Lock()
	e, ok := r.docs[k]
	if !ok {
		e = r.newEntry(k)
		r.docs[k] = e
	}
	if !e.open {
		e.open = true
		e.unsubscribe = r.watch(e.doc)
	}
	r.mu.Unlock()

	e.doc.Parse(text)
	e.markReady()
	r.logger.Debug("opened document", "path", k)
	return e.doc
}

// watch schedules validation after every published parse.
func (r *Registry) watch(doc *document.Document) func() {
	if r.scheduler == nil {
		return func() {}
	}
	return doc.Subscribe(func(ev document.Event) {
		if ev.Kind == document.EventParsed {
			r.scheduler.Schedule(ev.Document)
		}
	})
}

// Get returns the registered document at path. A document still being
// opened or loaded is returned once its first parse is published.
func (r *Registry) Get(path string) (*document.Document, bool) {
	r.mu.Lock()
	e, ok := r.docs[key(path)]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	<-e.ready
	return e.doc, true
}

// IsOpen reports whether path was opened explicitly rather than loaded as
// an ancestor.
func (r *Registry) IsOpen(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.docs[key(path)]
	return ok && e.open
}

// Update reparses a registered document in the background.
func (r *Registry) Update(path, text string) (<-chan struct{}, error) {
	doc, ok := r.Get(path)
	if !ok {
		return nil, fmt.Errorf("document %s is not open", path)
	}
	return doc.Update(text), nil
}

// Close disposes the document at path: it stops scheduled validation and
// removes its subscriptions.
func (r *Registry) Close(path string) {
	k := key(path)

	r.mu.Lock()
	e, ok := r.docs[k]
	delete(r.docs, k)
	r.mu.Unlock()

	if !ok {
		return
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
	if r.scheduler != nil {
		r.scheduler.Cancel(e.doc)
	}
	r.logger.Debug("closed document", "path", k)
}

// CloseAll disposes every registered document.
func (r *Registry) CloseAll() {
	for _, doc := range r.Documents() {
		r.Close(doc.Path())
	}
}

// Load implements document.Loader. Known documents are returned as is;
// others are read from disk and registered.
func (r *Registry) Load(path string) (*document.Document, error) {
	k := key(path)
	if doc, ok := r.Get(k); ok {
		return doc, nil
	}

	data, err := os.ReadFile(k)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", k, err)
	}

	r.mu.Lock()
	if e, ok := r.docs[k]; ok {
		r.mu.Unlock()
		<-e.ready
		return e.doc, nil
	}
	e := r.newEntry(k)
	r.docs[k] = e
	r.mu.Unlock()

	e.doc.Parse(string(data))
	e.markReady()
	r.logger.Debug("loaded document", "path", k)
	return e.doc, nil
}

// Documents returns the registered documents sorted by path.
func (r *Registry) Documents() []*document.Document {
	r.mu.Lock()
	out := make([]*document.Document, 0, len(r.docs))
	for _, e := range r.docs {
		out = append(out, e.doc)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Path() < out[j].Path() })
	return out
}
