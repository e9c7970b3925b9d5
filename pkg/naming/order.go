package naming

// symbolSpec is the symbol selection of a rule with "all" expanded.
type symbolSpec struct {
	kinds     Set
	access    Set
	modifiers Set // never expanded; empty means no requirement
}

func (m *Model) specOf(r *Rule) (symbolSpec, bool) {
	sym, ok := m.Symbols[r.Symbols]
	if !ok {
		return symbolSpec{}, false
	}
	mods := sym.Modifiers
	if mods == nil {
		mods = Set{}
	}
	return symbolSpec{
		kinds:     expand(sym.Kinds, allKinds),
		access:    expand(sym.Accessibilities, allAccessibilities),
		modifiers: mods,
	}, true
}

// moreSpecific reports whether a is strictly narrower than b.
func (a symbolSpec) moreSpecific(b symbolSpec) bool {
	if !a.access.subsetOf(b.access) || !a.kinds.subsetOf(b.kinds) || !b.modifiers.subsetOf(a.modifiers) {
		return false
	}
	return !(a.access.equal(b.access) && a.kinds.equal(b.kinds) && a.modifiers.equal(b.modifiers))
}

// incompatible lists modifier pairs no symbol can carry together.
var incompatible = map[string][]string{
	"abstract": {"static", "const", "sealed"},
	"async":    {"const"},
	"readonly": {"const"},
}

func conflicts(a, b string) bool {
	for _, other := range incompatible[a] {
		if other == b {
			return true
		}
	}
	for _, other := range incompatible[b] {
		if other == a {
			return true
		}
	}
	return false
}

// overlaps reports whether some symbol could satisfy both selections.
func (a symbolSpec) overlaps(b symbolSpec) bool {
	if !a.access.intersects(b.access) || !a.kinds.intersects(b.kinds) {
		return false
	}
	if len(a.modifiers) == 0 || len(b.modifiers) == 0 {
		return true
	}
	for x := range a.modifiers {
		for y := range b.modifiers {
			if conflicts(x, y) {
				return false
			}
		}
	}
	return true
}

// Sorted returns the rules ordered by specificity: a rule is placed once
// no remaining rule is strictly more specific, with ties broken by name.
// Rules whose symbols are undeclared keep their relative order at the end.
func (m *Model) Sorted() []*Rule {
	var known, unknown []*Rule
	specs := make(map[*Rule]symbolSpec, len(m.Rules))
	for _, r := range m.Rules {
		if s, ok := m.specOf(r); ok {
			specs[r] = s
			known = append(known, r)
		} else {
			unknown = append(unknown, r)
		}
	}

	out := make([]*Rule, 0, len(m.Rules))
	remaining := known
	for len(remaining) > 0 {
		best := -1
		for i, candidate := range remaining {
			if dominated(candidate, remaining, specs) {
				continue
			}
			if best < 0 || candidate.Name < remaining[best].Name {
				best = i
			}
		}
		if best < 0 {
			best = 0
		}
		out = append(out, remaining[best])
		remaining = append(remaining[:best:best], remaining[best+1:]...)
	}
	return append(out, unknown...)
}

func dominated(r *Rule, others []*Rule, specs map[*Rule]symbolSpec) bool {
	for _, o := range others {
		if o != r && specs[o].moreSpecific(specs[r]) {
			return true
		}
	}
	return false
}

// Reordering is a rule applied later than declared because a more specific
// overlapping rule declared after it takes precedence.
type Reordering struct {
	Rule  *Rule // the rule that moved later
	Other *Rule // the more specific rule it now follows
}

// Reorderings returns pairs of overlapping rules whose relative order
// differs between declaration and specificity order. Each moved rule is
// reported once, citing the first rule it now follows.
func (m *Model) Reorderings() []Reordering {
	sorted := m.Sorted()
	rank := make(map[*Rule]int, len(sorted))
	for i, r := range sorted {
		rank[r] = i
	}

	var out []Reordering
	for i, earlier := range m.Rules {
		a, ok := m.specOf(earlier)
		if !ok {
			continue
		}
		var cited *Rule
		for _, later := range m.Rules[i+1:] {
			b, ok := m.specOf(later)
			if !ok || rank[later] > rank[earlier] {
				continue
			}
			if a.overlaps(b) && (cited == nil || rank[later] < rank[cited]) {
				cited = later
			}
		}
		if cited != nil {
			out = append(out, Reordering{Rule: earlier, Other: cited})
		}
	}
	return out
}
