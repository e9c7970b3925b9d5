// Package testutil provides test utilities for structured logging.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Records collects log records for assertions.
type Records struct {
	mu      sync.Mutex
	records []slog.Record
}

// Messages returns the messages logged at level or above.
func (r *Records) Messages(level slog.Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, rec := range r.records {
		if rec.Level >= level {
			out = append(out, rec.Message)
		}
	}
	return out
}

// Has reports whether msg was logged at any level.
func (r *Records) Has(msg string) bool {
	for _, m := range r.Messages(slog.LevelDebug) {
		if m == msg {
			return true
		}
	}
	return false
}

type recordingHandler struct {
	records *Records
	next    slog.Handler
}

func (h recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordingHandler) Handle(ctx context.Context, rec slog.Record) error {
	h.records.mu.Lock()
	h.records.records = append(h.records.records, rec.Clone())
	h.records.mu.Unlock()
	return h.next.Handle(ctx, rec)
}

func (h recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return recordingHandler{records: h.records, next: h.next.WithAttrs(attrs)}
}

func (h recordingHandler) WithGroup(name string) slog.Handler {
	return recordingHandler{records: h.records, next: h.next.WithGroup(name)}
}

// NewRecordingLogger returns a logger that writes to t.Log() and keeps
// every record for inspection.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *Records) {
	t.Helper()
	records := &Records{}
	return slog.New(recordingHandler{records: records, next: NewTestLogger(t).Handler()}), records
}
