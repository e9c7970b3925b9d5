package naming

import (
	"sort"
	"strings"
)

// Set is a normalized set of lower-case names. A nil Set means "all".
type Set map[string]bool

var accessibilityAliases = map[string]string{
	"friend":           "internal",
	"protected_friend": "protected_internal",
}

var modifierAliases = map[string]string{
	"must_inherit": "abstract",
	"shared":       "static",
}

// Universes of the two closed vocabularies.
var (
	allKinds = []string{
		"namespace", "class", "struct", "interface", "enum", "property", "method",
		"field", "event", "delegate", "parameter", "type_parameter", "local", "local_function",
	}
	allAccessibilities = []string{
		"public", "internal", "private", "protected", "protected_internal",
		"private_protected", "local",
	}
)

// ParseSet parses a comma-separated list. "*" or an empty list yields nil.
func ParseSet(value string, aliases map[string]string) Set {
	set := Set{}
	for _, tok := range strings.Split(value, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if tok == "*" {
			return nil
		}
		if alias, ok := aliases[tok]; ok {
			tok = alias
		}
		set[tok] = true
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// expand returns s, or the full universe when s means "all".
func expand(s Set, universe []string) Set {
	if s != nil {
		return s
	}
	all := make(Set, len(universe))
	for _, name := range universe {
		all[name] = true
	}
	return all
}

func (s Set) subsetOf(other Set) bool {
	for name := range s {
		if !other[name] {
			return false
		}
	}
	return true
}

func (s Set) intersects(other Set) bool {
	for name := range s {
		if other[name] {
			return true
		}
	}
	return false
}

func (s Set) equal(other Set) bool {
	return len(s) == len(other) && s.subsetOf(other)
}

// Names returns the members in sorted order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
