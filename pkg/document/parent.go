package document

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Loader loads the document stored at path. Implementations may share
// instances between callers.
type Loader interface {
	Load(path string) (*Document, error)
}

// DiskLoader reads and parses documents from the filesystem. Documents it
// loads use the same loader for their own ancestors.
type DiskLoader struct {
	Logger *slog.Logger
}

// Load reads path and returns a parsed document.
func (l *DiskLoader) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc := New(Config{Path: path, Loader: l, Logger: l.Logger})
	doc.Parse(string(data))
	return doc, nil
}

// Parent returns the nearest ancestor document, or nil when the document
// is root or no ancestor directory holds a .editorconfig file. The result
// is cached until a reparse changes whether the document is root.
func (d *Document) Parent() *Document {
	d.parentMu.Lock()
	defer d.parentMu.Unlock()

	snap := d.Snapshot()
	if d.parentResolved && d.parentRoot == snap.IsRoot() {
		return d.parent
	}

	d.parent = nil
	if !snap.IsRoot() {
		d.parent = d.resolveParent()
	}
	d.parentResolved = true
	d.parentRoot = snap.IsRoot()
	return d.parent
}

// ResetParent drops the cached parent so the next Parent call searches the
// filesystem again. Call it when an ancestor file is created or removed.
func (d *Document) ResetParent() {
	d.parentMu.Lock()
	defer d.parentMu.Unlock()
	d.parentResolved = false
	d.parent = nil
}

// invalidateParent drops the cached parent when root-ness changed.
func (d *Document) invalidateParent(snap *Snapshot) {
	d.parentMu.Lock()
	defer d.parentMu.Unlock()
	if d.parentResolved && d.parentRoot != snap.IsRoot() {
		d.parentResolved = false
		d.parent = nil
	}
}

func (d *Document) resolveParent() *Document {
	if d.path == "" {
		return nil
	}

	path, ok := FindParentFile(d.Dir())
	if !ok {
		return nil
	}

	parent, err := d.loader.Load(path)
	if err != nil {
		d.logger.Warn("failed to load parent", "path", d.path, "parent", path, "error", err)
		return nil
	}
	d.logger.Debug("resolved parent", "path", d.path, "parent", path)
	return parent
}

// FindParentFile walks upward from the parent of dir and returns the
// first .editorconfig file found. Symlinks are resolved and each directory
// is visited at most once.
func FindParentFile(dir string) (string, bool) {
	visited := make(map[string]bool)
	visited[realDir(dir)] = true

	for {
		up := filepath.Dir(dir)
		if up == dir {
			return "", false
		}
		dir = up

		resolved := realDir(dir)
		if visited[resolved] {
			return "", false
		}
		visited[resolved] = true

		// Unreadable directories are treated as having no file.
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
}

func realDir(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return filepath.Clean(dir)
}

// Chain returns the document followed by each ancestor, nearest first.
func (d *Document) Chain() []*Document {
	chain := []*Document{d}
	seen := map[string]bool{d.path: true}
	for cur := d.Parent(); cur != nil; cur = cur.Parent() {
		if seen[cur.path] {
			break
		}
		seen[cur.path] = true
		chain = append(chain, cur)
	}
	return chain
}
