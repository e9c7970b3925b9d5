package lint

import "strings"

// DefaultIgnoredPrefixes lists keyword prefixes owned by other tools.
var DefaultIgnoredPrefixes = []string{"resharper_", "idea_", "roslynator_", "ij_"}

// DefaultIgnorePaths lists directories skipped when probing the file tree.
var DefaultIgnorePaths = []string{".git", ".vs", ".idea", "node_modules", "bin", "obj", "packages"}

// Settings controls which rules are enabled.
type Settings struct {
	UnknownProperties     bool     `koanf:"unknown_properties" json:"unknown_properties"`
	UnknownValues         bool     `koanf:"unknown_values" json:"unknown_values"`
	DuplicateSections     bool     `koanf:"duplicate_sections" json:"duplicate_sections"`
	DuplicateProperties   bool     `koanf:"duplicate_properties" json:"duplicate_properties"`
	ParentDuplicates      bool     `koanf:"parent_duplicates" json:"parent_duplicates"`
	Globbing              bool     `koanf:"globbing" json:"globbing"`
	AllowSpacesInSections bool     `koanf:"allow_spaces_in_sections" json:"allow_spaces_in_sections"`
	IgnoredPrefixes       []string `koanf:"ignored_prefixes" json:"ignored_prefixes"`
	IgnorePaths           []string `koanf:"ignore_paths" json:"ignore_paths"`

	// Disabled contains error codes to skip
	Disabled []string `koanf:"disabled" json:"disabled,omitempty"`
}

// DefaultSettings returns settings with every rule family enabled.
func DefaultSettings() *Settings {
	return &Settings{
		UnknownProperties:   true,
		UnknownValues:       true,
		DuplicateSections:   true,
		DuplicateProperties: true,
		ParentDuplicates:    true,
		Globbing:            true,
		IgnoredPrefixes:     append([]string(nil), DefaultIgnoredPrefixes...),
		IgnorePaths:         append([]string(nil), DefaultIgnorePaths...),
	}
}

// IsDisabled returns true if the error code should be skipped.
func (s *Settings) IsDisabled(code string) bool {
	if s == nil {
		return false
	}
	for _, c := range s.Disabled {
		if strings.EqualFold(strings.TrimSpace(c), code) {
			return true
		}
	}
	return false
}

// Disable disables an error code.
func (s *Settings) Disable(code string) *Settings {
	if !s.IsDisabled(code) {
		s.Disabled = append(s.Disabled, code)
	}
	return s
}

// IsIgnoredKeyword reports whether keyword starts with an ignored prefix, ignoring case.
func (s *Settings) IsIgnoredKeyword(keyword string) bool {
	if s == nil {
		return false
	}
	lower := strings.ToLower(keyword)
	for _, prefix := range s.IgnoredPrefixes {
		prefix = strings.ToLower(strings.TrimSpace(prefix))
		if prefix != "" && strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// SplitList splits a comma-separated list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
