package validate

import (
	"github.com/leapstack-labs/ecl/pkg/glob"
	"github.com/leapstack-labs/ecl/pkg/lint"
)

// checkGlobbing flags sections whose pattern matches no file under the
// document's directory. Walk failures count as a match.
func checkGlobbing(r *run) {
	if r.doc.Path() == "" || !r.enabled(lint.GlobbingNoMatch) {
		return
	}
	dir := r.doc.Dir()

	for _, section := range r.snap.Sections {
		if section.Item == nil {
			continue
		}
		pattern, reason := SectionPattern(section.Item.Text)
		if reason != "" {
			continue
		}
		m, ok := glob.TryCreateMatcher(pattern)
		if !ok {
			continue
		}

		found, err := glob.AnyFileMatches(dir, []*glob.Matcher{m}, r.settings.IgnorePaths)
		if err != nil {
			r.v.logger.Warn("file tree probe failed", "dir", dir, "pattern", pattern, "error", err)
		}
		if !found {
			r.report(section.Item, lint.GlobbingNoMatch, section.Item.Text, dir)
		}
	}
}
