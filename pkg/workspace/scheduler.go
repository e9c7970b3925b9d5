package workspace

import (
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/validate"
)

// DefaultDebounce is the quiet period before a scheduled validation runs.
const DefaultDebounce = 1000 * time.Millisecond

// SchedulerConfig configures a Scheduler.
type SchedulerConfig struct {
	// Validator runs the passes (required).
	Validator *validate.Validator
	// Debounce is the quiet period (optional, DefaultDebounce if zero).
	Debounce time.Duration
	// OnValidated is called after every pass (optional).
	OnValidated func(doc *document.Document, errs []core.DisplayError)
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Scheduler debounces validation per document. Requests arriving within
// the debounce window coalesce into one pass. A pass never starts while
// the document is parsing, at most one pass per document runs at a time,
// and a pass that raced with a parse is queued again.
type Scheduler struct {
	validator   *validate.Validator
	debounce    time.Duration
	onValidated func(*document.Document, []core.DisplayError)
	logger      *slog.Logger

	mu      sync.Mutex
	entries map[*document.Document]*schedule
	closed  bool
}

type schedule struct {
	timer   *time.Timer
	seq     uint64
	running bool
	pending bool // requested while running
}

// NewScheduler creates a scheduler.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Scheduler{
		validator:   cfg.Validator,
		debounce:    debounce,
		onValidated: cfg.OnValidated,
		logger:      logger,
		entries:     make(map[*document.Document]*schedule),
	}
}

// Debounce returns the configured quiet period.
func (s *Scheduler) Debounce() time.Duration {
	return s.debounce
}

// Schedule requests a validation pass for doc after the debounce window.
// A pending request for the same document is replaced.
func (s *Scheduler) Schedule(doc *document.Document) {
	if doc == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	e, ok := s.entries[doc]
	if !ok {
		e = &schedule{}
		s.entries[doc] = e
	}
	e.seq++
	seq := e.seq
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(s.debounce, func() {
		s.fire(doc, seq)
	})
}

func (s *Scheduler) fire(doc *document.Document, seq uint64) {
	s.mu.Lock()
	e, ok := s.entries[doc]
	if !ok || s.closed || e.seq != seq {
		s.mu.Unlock()
		return
	}
	if e.running {
		e.pending = true
		s.mu.Unlock()
		return
	}
	if doc.IsParsing() {
		s.mu.Unlock()
		s.logger.Debug("deferring validation while parsing", "path", doc.Path())
		s.Schedule(doc)
		return
	}
	e.running = true
	s.mu.Unlock()

	gen := doc.Snapshot().Generation
	errs, err := s.validator.Validate(doc)
	if err != nil {
		s.logger.Error("validation failed", "path", doc.Path(), "error", err)
	}
	if err == nil && s.onValidated != nil {
		s.onValidated(doc, errs)
	}
	raced := doc.IsParsing() || doc.Snapshot().Generation != gen

	s.mu.Lock()
	e.running = false
	requeue := e.pending || raced
	e.pending = false
	if !requeue && e.seq == seq && s.entries[doc] == e {
		delete(s.entries, doc)
	}
	s.mu.Unlock()

	if requeue {
		s.logger.Debug("requeueing validation", "path", doc.Path(), "raced", raced)
		s.Schedule(doc)
	}
}

// Cancel drops any pending pass for doc.
func (s *Scheduler) Cancel(doc *document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[doc]; ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(s.entries, doc)
	}
}

// Pending reports whether a pass for doc is scheduled or running.
func (s *Scheduler) Pending(doc *document.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[doc]
	return ok
}

// Close stops all timers. Later requests are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for doc, e := range s.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(s.entries, doc)
	}
}
