package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registration is an external keyword set, typically shipped by an
// analyzer package:
//
//	source: roslynator
//	keywords:
//	  - name: roslynator_accessibility_modifiers
//	    values: [explicit, implicit]
//	    default_value: [explicit]
type Registration struct {
	Source   string
	Keywords []Keyword
}

type registrationFile struct {
	Source   string          `yaml:"source"`
	Keywords []schemaKeyword `yaml:"keywords"`
}

// ParseRegistration decodes a YAML keyword registration. When the document
// names no source, fallback is used.
func ParseRegistration(data []byte, fallback string) (*Registration, error) {
	var file registrationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse registration: %w", err)
	}

	source := strings.TrimSpace(file.Source)
	if source == "" {
		source = fallback
	}
	if source == "" {
		return nil, errors.New("registration has no source")
	}

	reg := &Registration{Source: source}
	for i, raw := range file.Keywords {
		if strings.TrimSpace(raw.Name) == "" {
			return nil, fmt.Errorf("keyword %d has no name", i)
		}
		reg.Keywords = append(reg.Keywords, raw.toKeyword(source))
	}
	return reg, nil
}

// LoadRegistration reads a YAML keyword registration from path. The file
// name without extension is the default source label.
func LoadRegistration(path string) (*Registration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registration: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseRegistration(data, base)
}

// MergeRegistrations merges registrations in order; earlier sources win.
func (c *Catalog) MergeRegistrations(regs ...*Registration) *Catalog {
	out := c
	for _, reg := range regs {
		if reg == nil {
			continue
		}
		out = out.Merge(reg.Source, reg.Keywords)
	}
	return out
}
