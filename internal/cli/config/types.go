// Package config provides configuration management for the ecl CLI.
//
// Values are layered, lowest precedence first: built-in defaults, an
// ecl.yaml file, ECL_ environment variables, then explicitly set flags.
package config

import (
	"time"

	"github.com/leapstack-labs/ecl/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Schemas      []string      `koanf:"schemas"` // keyword registration files
	Lint         lint.Settings `koanf:"lint"`
	Format       FormatConfig  `koanf:"format"`
	Watch        WatchConfig   `koanf:"watch"`

	// ProjectRoot is the directory relative paths resolve against.
	ProjectRoot string `koanf:"-"`
}

// FormatConfig configures the editing commands.
type FormatConfig struct {
	Align string `koanf:"align"` // none, section or document
	Sort  bool   `koanf:"sort"`  // fix also sorts sections
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultAlign    = "none"
	DefaultDebounce = time.Second
)

// configFileNames are searched in order in each directory.
var configFileNames = []string{"ecl.yaml", "ecl.yml", ".ecl.yaml", ".ecl.yml"}

// Settings returns a copy of the lint settings.
func (c *Config) Settings() *lint.Settings {
	s := c.Lint
	s.IgnoredPrefixes = append([]string(nil), c.Lint.IgnoredPrefixes...)
	s.IgnorePaths = append([]string(nil), c.Lint.IgnorePaths...)
	s.Disabled = append([]string(nil), c.Lint.Disabled...)
	return &s
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Lint:         *lint.DefaultSettings(),
		Format:       FormatConfig{Align: DefaultAlign},
		Watch:        WatchConfig{Debounce: DefaultDebounce},
	}
}
