package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/ecl/internal/cli/output"
	"github.com/leapstack-labs/ecl/pkg/core"
	"github.com/leapstack-labs/ecl/pkg/document"
	"github.com/leapstack-labs/ecl/pkg/workspace"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Severity string        // Minimum category: error, warning, suggestion
	Debounce time.Duration // Bound to watch.debounce
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: "Revalidate .editorconfig files as they change",
		Long: `Watch .editorconfig files and print diagnostics after every change.

Changes are debounced: edits arriving within the debounce window are
validated once. Editing a parent file revalidates every watched file
that inherits from it. Press Ctrl+C to stop.`,
		Example: `  # Watch the current directory
  ecl watch

  # Validate 200ms after the last change
  ecl watch --debounce 200ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			threshold, ok := core.ParseCategory(opts.Severity)
			if !ok {
				return fmt.Errorf("unknown severity %q", opts.Severity)
			}
			files, err := discoverFiles(cmdCtx.Cfg, args)
			if err != nil {
				return err
			}
			// --debounce reaches the config as watch.debounce.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmdCtx, files, cmdCtx.Cfg.Watch.Debounce, threshold)
		},
	}

	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, suggestion")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", workspace.DefaultDebounce, "Quiet period before revalidating")

	return cmd
}

// watchSession ties the file watcher to a workspace of open documents.
type watchSession struct {
	cmdCtx    *CommandContext
	reg       *workspace.Registry
	scheduler *workspace.Scheduler
	watcher   *fsnotify.Watcher
	threshold core.ErrorCategory

	mu sync.Mutex // serializes output
}

// runWatch validates files and keeps revalidating them on change until
// ctx is cancelled.
func runWatch(ctx context.Context, cmdCtx *CommandContext, files []string, debounce time.Duration, threshold core.ErrorCategory) error {
	s := &watchSession{cmdCtx: cmdCtx, threshold: threshold}
	s.scheduler = workspace.NewScheduler(workspace.SchedulerConfig{
		Validator:   cmdCtx.Validator,
		Debounce:    debounce,
		OnValidated: s.report,
		Logger:      cmdCtx.Logger,
	})
	defer s.scheduler.Close()
	s.reg = workspace.NewRegistry(workspace.RegistryConfig{
		Scheduler: s.scheduler,
		Logger:    cmdCtx.Logger,
	})
	defer s.reg.CloseAll()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	s.watcher = watcher

	for _, path := range files {
		text, err := readFile(path)
		if err != nil {
			return err
		}
		s.reg.Open(path, text)
	}
	s.addWatches()

	r := cmdCtx.Renderer
	s.mu.Lock()
	r.Println(r.Styles().Muted.Render(fmt.Sprintf("Watching %d files. Press Ctrl+C to stop.", len(files))))
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handle(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Error("watcher error", "error", err)
		}
	}
}

// watchedDirs returns every directory from each registered document up to
// its farthest ancestor, so files created in between are noticed.
func (s *watchSession) watchedDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, doc := range s.reg.Documents() {
		chain := doc.Chain()
		top := chain[len(chain)-1].Dir()
		for dir := doc.Dir(); ; dir = filepath.Dir(dir) {
			add(dir)
			if dir == top || filepath.Dir(dir) == dir || !isWithin(top, dir) {
				break
			}
		}
	}
	sort.Strings(dirs)
	return dirs
}

// addWatches starts watching directories not watched yet.
func (s *watchSession) addWatches() {
	for _, dir := range s.watchedDirs() {
		if err := s.watcher.Add(dir); err != nil {
			s.cmdCtx.Logger.Warn("failed to watch directory", "dir", dir, "error", err)
		}
	}
}

// isWithin reports whether path is dir or below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *watchSession) handle(event fsnotify.Event) {
	if filepath.Base(event.Name) != document.FileName {
		return
	}
	logger := s.cmdCtx.Logger

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		logger.Debug("file removed", "path", event.Name)
		s.reg.Close(event.Name)
		s.reparent(filepath.Dir(event.Name), nil)
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	text, err := readFile(event.Name)
	if err != nil {
		logger.Warn("failed to read changed file", "path", event.Name, "error", err)
		return
	}
	changed, ok := s.reg.Get(event.Name)
	if !ok {
		logger.Debug("file created", "path", event.Name)
		created := s.reg.Open(event.Name, text)
		s.reparent(created.Dir(), created)
		return
	}
	done, err := s.reg.Update(event.Name, text)
	if err != nil {
		logger.Warn("failed to update document", "path", event.Name, "error", err)
		return
	}
	go func() {
		<-done
		s.revalidateDependents(changed)
	}()
}

// reparent drops the cached parents of documents below dir after a
// .editorconfig appeared or disappeared there, then revalidates the open
// ones and watches any directories their new chains reach.
func (s *watchSession) reparent(dir string, created *document.Document) {
	var affected []*document.Document
	for _, doc := range s.reg.Documents() {
		if doc == created || doc.Dir() == dir || !isWithin(dir, doc.Dir()) {
			continue
		}
		doc.ResetParent()
		affected = append(affected, doc)
	}
	for _, doc := range affected {
		if s.reg.IsOpen(doc.Path()) {
			s.scheduler.Schedule(doc)
		}
	}
	s.addWatches()
}

// revalidateDependents schedules every open document that inherits from
// changed.
func (s *watchSession) revalidateDependents(changed *document.Document) {
	for _, doc := range s.reg.Documents() {
		if doc == changed || !s.reg.IsOpen(doc.Path()) {
			continue
		}
		for _, ancestor := range doc.Chain() {
			if ancestor == changed {
				s.scheduler.Schedule(doc)
				break
			}
		}
	}
}

// report prints the result of one validation pass.
func (s *watchSession) report(doc *document.Document, errs []core.DisplayError) {
	var diags []core.DisplayError
	for _, d := range errs {
		if d.Category <= s.threshold {
			diags = append(diags, d)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.cmdCtx.Renderer
	stamp := time.Now().Format("15:04:05")
	if len(diags) == 0 {
		r.Success(fmt.Sprintf("%s %s: no issues", stamp, doc.Path()))
		return
	}
	r.Println(fmt.Sprintf("%s %s", r.Styles().Muted.Render(stamp), r.Styles().ModelPath.Render(doc.Path())))
	writeDiagnostics(r, diags)
	r.Println("")
}

// writeDiagnostics prints one line per diagnostic.
func writeDiagnostics(r *output.Renderer, diags []core.DisplayError) {
	for _, d := range diags {
		loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
		r.Printf("  %s  %s  %s  %s\n",
			r.Styles().Muted.Render(fmt.Sprintf("%-6s", loc)),
			severityStyle(r, d.Category),
			r.Styles().Bold.Render(d.Code),
			d.Description,
		)
	}
}
