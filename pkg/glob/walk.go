package glob

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gobwas "github.com/gobwas/glob"
)

var errFound = errors.New("match found")

// ignoreSet matches directories excluded from a tree walk.
type ignoreSet []gobwas.Glob

// compileIgnore compiles ignore patterns. Invalid patterns are skipped.
func compileIgnore(patterns []string) ignoreSet {
	var set ignoreSet
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := gobwas.Compile(pattern, '/')
		if err != nil {
			continue
		}
		set = append(set, g)
	}
	return set
}

// matches reports whether a directory, given by its slash-separated path
// relative to the walk root, is ignored. Both the base name and the
// relative path are tested.
func (s ignoreSet) matches(rel string) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}
	for _, g := range s {
		if g.Match(base) || g.Match(rel) {
			return true
		}
	}
	return false
}

// AnyFileMatches walks the tree under root and reports whether any file
// matches one of the matchers. Files are evaluated as "/"-prefixed paths
// relative to root. Directories matching an ignore pattern are skipped.
//
// The walk fails open: when the tree cannot be read, AnyFileMatches returns
// true together with the error so callers can log it.
func AnyFileMatches(root string, matchers []*Matcher, ignore []string) (bool, error) {
	if len(matchers) == 0 {
		return false, nil
	}

	skip := compileIgnore(ignore)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if skip.matches(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if MatchAny(matchers, "/"+rel) {
			return errFound
		}
		return nil
	})

	switch {
	case errors.Is(err, errFound):
		return true, nil
	case err != nil:
		return true, fmt.Errorf("failed to walk %s: %w", root, err)
	default:
		return false, nil
	}
}
