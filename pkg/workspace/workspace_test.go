package workspace

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leapstack-labs/ecl/internal/testutil"
	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/lint"
	"github.com/leapstack-labs/ecl/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	doc  *document.Document
	errs []core.DisplayError
}

func newScheduler(t *testing.T, debounce time.Duration) (*Scheduler, <-chan result) {
	t.Helper()
	settings := lint.DefaultSettings()
	settings.Globbing = false

	results := make(chan result, 64)
	s := NewScheduler(SchedulerConfig{
		Validator: validate.New(validate.Config{Settings: settings, Logger: testutil.NewTestLogger(t)}),
		Debounce:  debounce,
		OnValidated: func(doc *document.Document, errs []core.DisplayError) {
			results <- result{doc: doc, errs: errs}
		},
		Logger: testutil.NewTestLogger(t),
	})
	t.Cleanup(s.Close)
	return s, results
}

func waitResult(t *testing.T, results <-chan result) result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for validation")
		return result{}
	}
}

func assertNoResult(t *testing.T, results <-chan result, wait time.Duration) {
	t.Helper()
	select {
	case r := <-results:
		t.Fatalf("unexpected validation of %s", r.doc.Path())
	case <-time.After(wait):
	}
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(SchedulerConfig{})
	assert.Equal(t, DefaultDebounce, s.Debounce())
	assert.Equal(t, time.Second, DefaultDebounce)
}

func TestScheduler_CoalescesBursts(t *testing.T) {
	s, results := newScheduler(t, 30*time.Millisecond)
	doc := document.New(document.Config{})
	doc.Parse("[*]\nfoo = bar\n")

	for i := 0; i < 10; i++ {
		s.Schedule(doc)
	}

	r := waitResult(t, results)
	assert.Same(t, doc, r.doc)
	require.Len(t, r.errs, 1)
	assert.Equal(t, "EC112", r.errs[0].Code)

	assertNoResult(t, results, 100*time.Millisecond)
	assert.False(t, s.Pending(doc), "finished passes are forgotten")
}

func TestScheduler_Cancel(t *testing.T) {
	s, results := newScheduler(t, 30*time.Millisecond)
	doc := document.New(document.Config{})
	doc.Parse("[*]\n")

	s.Schedule(doc)
	assert.True(t, s.Pending(doc))
	s.Cancel(doc)
	assert.False(t, s.Pending(doc))

	assertNoResult(t, results, 100*time.Millisecond)
}

func TestScheduler_ClosedIgnoresRequests(t *testing.T) {
	s, results := newScheduler(t, 10*time.Millisecond)
	doc := document.New(document.Config{})
	s.Close()
	s.Schedule(doc)
	assert.False(t, s.Pending(doc))
	assertNoResult(t, results, 50*time.Millisecond)
}

func TestScheduler_SingleFlight(t *testing.T) {
	var active, maxActive atomic.Int32
	var passes atomic.Int32

	s := NewScheduler(SchedulerConfig{
		Validator: validate.New(validate.Config{}),
		Debounce:  time.Millisecond,
		OnValidated: func(*document.Document, []core.DisplayError) {
			n := active.Add(1)
			for {
				cur := maxActive.Load()
				if n <= cur || maxActive.CompareAndSwap(cur, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
			passes.Add(1)
		},
	})
	t.Cleanup(s.Close)

	doc := document.New(document.Config{})
	doc.Parse("[*]\n")
	for i := 0; i < 20; i++ {
		s.Schedule(doc)
		time.Sleep(time.Millisecond)
	}

	require.Eventually(t, func() bool { return passes.Load() > 0 }, 5*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), maxActive.Load())
}

func TestRegistry_OpenGetClose(t *testing.T) {
	s, results := newScheduler(t, 10*time.Millisecond)
	r := NewRegistry(RegistryConfig{Scheduler: s, Logger: testutil.NewTestLogger(t)})

	path := filepath.Join(t.TempDir(), document.FileName)
	doc := r.Open(path, "root = true\n[*]\nfoo = bar\n")
	assert.Equal(t, "root = true\n[*]\nfoo = bar\n", doc.Text())

	got, ok := r.Get(path)
	require.True(t, ok)
	assert.Same(t, doc, got)
	assert.Equal(t, 1, doc.Subscribers())

	res := waitResult(t, results)
	assert.Same(t, doc, res.doc)
	require.Len(t, res.errs, 1)
	assert.Equal(t, "EC112", res.errs[0].Code)

	again := r.Open(path, "root = true\n")
	assert.Same(t, doc, again, "reopening keeps the instance")
	assert.Equal(t, 1, doc.Subscribers())
	waitResult(t, results)

	r.Close(path)
	_, ok = r.Get(path)
	assert.False(t, ok)
	assert.Equal(t, 0, doc.Subscribers())
	assert.False(t, s.Pending(doc))
}

func TestRegistry_UpdateSchedules(t *testing.T) {
	s, results := newScheduler(t, 10*time.Millisecond)
	r := NewRegistry(RegistryConfig{Scheduler: s})

	path := filepath.Join(t.TempDir(), document.FileName)
	r.Open(path, "root = true\n")
	waitResult(t, results)

	done, err := r.Update(path, "root = true\n[*]\nbad_key = 1\n")
	require.NoError(t, err)
	<-done

	res := waitResult(t, results)
	require.Len(t, res.errs, 1)
	assert.Equal(t, "EC112", res.errs[0].Code)

	_, err = r.Update(filepath.Join(t.TempDir(), "missing"), "")
	assert.Error(t, err)
}

func TestRegistry_LoadSharesAncestors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, document.FileName), []byte("root = true\n[*]\nindent_style = space\n"), 0o644))

	r := NewRegistry(RegistryConfig{})
	a := r.Open(filepath.Join(root, "a", document.FileName), "[*.cs]\n")
	b := r.Open(filepath.Join(root, "b", document.FileName), "[*.vb]\n")

	parentA := a.Parent()
	require.NotNil(t, parentA)
	assert.Same(t, parentA, b.Parent())

	loaded, ok := r.Get(filepath.Join(root, document.FileName))
	require.True(t, ok)
	assert.Same(t, parentA, loaded)
	assert.Len(t, r.Documents(), 3)

	_, err := r.Load(filepath.Join(root, "missing", document.FileName))
	assert.Error(t, err)

	r.CloseAll()
	assert.Empty(t, r.Documents())
}

func TestRegistry_ConcurrentOpen(t *testing.T) {
	r := NewRegistry(RegistryConfig{})
	path := filepath.Join(t.TempDir(), document.FileName)

	var wg sync.WaitGroup
	docs := make([]*document.Document, 8)
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			docs[i] = r.Open(path, "[*]\n")
		}(i)
	}
	wg.Wait()

	for _, doc := range docs {
		assert.Same(t, docs[0], doc)
	}
}

func TestRegistry_ConcurrentLoadReturnsParsed(t *testing.T) {
	path := filepath.Join(t.TempDir(), document.FileName)
	require.NoError(t, os.WriteFile(path, []byte("root = true\n[*.cs]\nindent_size = 4\n"), 0o644))

	for round := 0; round < 20; round++ {
		r := NewRegistry(RegistryConfig{})

		var wg sync.WaitGroup
		sections := make([]int, 8)
		for i := range sections {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var doc *document.Document
				if i%2 == 0 {
					var err error
					doc, err = r.Load(path)
					if err != nil {
						return
					}
				} else if d, ok := r.Get(path); ok {
					doc = d
				} else if d, err := r.Load(path); err == nil {
					doc = d
				}
				if doc != nil {
					sections[i] = len(doc.Snapshot().Sections)
				}
			}(i)
		}
		wg.Wait()

		for i, n := range sections {
			assert.Equal(t, 1, n, "round %d worker %d saw an unparsed document", round, i)
		}
	}
}

func TestRegistry_GetWaitsForOpen(t *testing.T) {
	r := NewRegistry(RegistryConfig{})
	path := filepath.Join(t.TempDir(), document.FileName)

	var wg sync.WaitGroup
	var unparsed atomic.Int32
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.Open(path, "[*]\nindent_style = tab\n")
	}()
	go func() {
		defer wg.Done()
		for {
			if doc, ok := r.Get(path); ok {
				if len(doc.Snapshot().Sections) == 0 {
					unparsed.Add(1)
				}
				return
			}
			time.Sleep(time.Microsecond)
		}
	}()
	wg.Wait()
	assert.Zero(t, unparsed.Load())
}
