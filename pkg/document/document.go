// Package document holds a parsed .editorconfig file and resolves the
// files it inherits from.
//
// A Document starts empty. Callers parse explicitly, either synchronously
// with Parse or in the background with Update, and read the published
// state through Snapshot. Each parse replaces the snapshot wholesale, so
// readers never observe a partially built model.
package document

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// FileName is the name of an EditorConfig file.
const FileName = ".editorconfig"

// ErrNilDocument is returned where a document is required but nil was given.
var ErrNilDocument = errors.New("document is nil")

// Config configures a Document.
type Config struct {
	// Path is the file path of the document.
	Path string
	// Loader loads ancestor documents (optional, reads from disk if nil).
	Loader Loader
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Document is a parsed .editorconfig file.
type Document struct {
	path   string
	loader Loader
	logger *slog.Logger

	snapshot  atomic.Pointer[Snapshot]
	requested atomic.Uint64 // latest generation handed out
	inflight  atomic.Int32  // parses currently running

	events *notifier

	parentMu       sync.Mutex
	parent         *Document
	parentResolved bool
	parentRoot     bool // root-ness of the snapshot the cache was built for
}

// New creates an unparsed document.
func New(cfg Config) *Document {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path := cfg.Path
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	d := &Document{
		path:   path,
		loader: cfg.Loader,
		logger: logger,
		events: newNotifier(),
	}
	if d.loader == nil {
		d.loader = &DiskLoader{Logger: logger}
	}
	d.snapshot.Store(newSnapshot("", 0))
	return d
}

// Path returns the document's absolute file path.
func (d *Document) Path() string {
	return d.path
}

// Dir returns the directory containing the document.
func (d *Document) Dir() string {
	return filepath.Dir(d.path)
}

// Snapshot returns the latest published parse.
func (d *Document) Snapshot() *Snapshot {
	return d.snapshot.Load()
}

// Text returns the text of the latest published parse.
func (d *Document) Text() string {
	return d.Snapshot().Text
}

// IsParsing reports whether a parse is in flight.
func (d *Document) IsParsing() bool {
	return d.inflight.Load() > 0
}

// Parse parses text synchronously and publishes the result unless a newer
// parse was requested meanwhile. It returns the snapshot it built.
func (d *Document) Parse(text string) *Snapshot {
	gen := d.requested.Add(1)
	d.inflight.Add(1)
	defer d.inflight.Add(-1)
	return d.parse(text, gen)
}

// Update parses text in the background. The returned channel is closed
// once the parse has finished, whether or not it was published.
func (d *Document) Update(text string) <-chan struct{} {
	gen := d.requested.Add(1)
	d.inflight.Add(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer d.inflight.Add(-1)
		d.parse(text, gen)
	}()
	return done
}

func (d *Document) parse(text string, gen uint64) *Snapshot {
	snap := newSnapshot(text, gen)

	if !d.publish(snap) {
		d.logger.Debug("dropping stale parse", "path", d.path, "generation", gen)
		return snap
	}

	d.logger.Debug("parsed document",
		"path", d.path,
		"generation", gen,
		"items", len(snap.Items),
		"sections", len(snap.Sections))
	d.events.broadcast(Event{Kind: EventParsed, Document: d, Snapshot: snap})
	return snap
}

// publish swaps in snap if it is the newest requested generation and
// newer than what is published.
func (d *Document) publish(snap *Snapshot) bool {
	for {
		if snap.Generation != d.requested.Load() {
			return false
		}
		cur := d.snapshot.Load()
		if cur.Generation >= snap.Generation {
			return false
		}
		if d.snapshot.CompareAndSwap(cur, snap) {
			d.invalidateParent(snap)
			return true
		}
	}
}

// Subscribe registers fn for document events and returns a function that
// unsubscribes it.
func (d *Document) Subscribe(fn func(Event)) (unsubscribe func()) {
	return d.events.subscribe(fn)
}

// Subscribers returns the number of registered subscribers.
func (d *Document) Subscribers() int {
	return d.events.len()
}

// NotifyValidated announces a completed validation pass over snap.
func (d *Document) NotifyValidated(snap *Snapshot) {
	d.events.broadcast(Event{Kind: EventValidated, Document: d, Snapshot: snap})
}
