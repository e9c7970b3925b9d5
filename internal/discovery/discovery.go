// Package discovery finds .editorconfig files for the CLI.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every .editorconfig below the base directory.
const DefaultPattern = "**/.editorconfig"

// Options controls how file discovery behaves.
type Options struct {
	// Paths are files or directories to search. Files are returned as
	// given; directories are walked. Defaults to ".".
	Paths []string

	// Patterns are doublestar globs matched against slash-separated paths
	// relative to each walked directory. Defaults to DefaultPattern.
	Patterns []string

	// Ignore lists directory names or doublestar globs that are not
	// descended into.
	Ignore []string
}

// Discover returns the matching files, deduplicated and sorted.
func Discover(opts Options) ([]string, error) {
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	for _, p := range append(append([]string(nil), patterns...), opts.Ignore...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	w := &walker{
		patterns: patterns,
		ignore:   opts.Ignore,
		seen:     make(map[string]bool),
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			w.addFile(path)
			continue
		}
		w.base = path
		if err := filepath.WalkDir(path, w.visit); err != nil {
			return nil, err
		}
	}

	sort.Strings(w.result)
	return w.result, nil
}

// walker holds state for the directory walk.
type walker struct {
	base     string
	patterns []string
	ignore   []string
	seen     map[string]bool
	result   []string
}

// visit is the fs.WalkDirFunc callback.
func (w *walker) visit(path string, d fs.DirEntry, walkErr error) error {
	if walkErr != nil {
		// Unreadable subdirectories are skipped, not fatal.
		if d != nil && d.IsDir() && path != w.base {
			return filepath.SkipDir
		}
		return walkErr
	}

	rel, err := filepath.Rel(w.base, path)
	if err != nil || rel == "." {
		return nil
	}
	rel = filepath.ToSlash(rel)

	if d.IsDir() {
		if w.ignored(d.Name(), rel) {
			return filepath.SkipDir
		}
		return nil
	}
	if w.matchesAny(rel) {
		w.addFile(path)
	}
	return nil
}

func (w *walker) ignored(name, rel string) bool {
	for _, p := range w.ignore {
		if p == name {
			return true
		}
		if matched, err := doublestar.Match(p, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// matchesAny returns true if rel matches any of the configured patterns.
func (w *walker) matchesAny(rel string) bool {
	for _, p := range w.patterns {
		matched, err := doublestar.Match(p, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// addFile adds a file to the result set if not already seen.
func (w *walker) addFile(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if !w.seen[absPath] {
		w.seen[absPath] = true
		w.result = append(w.result, path)
	}
}
