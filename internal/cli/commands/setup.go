package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leapstack-labs/ecl/internal/cli/config"
	"github.com/leapstack-labs/ecl/internal/cli/output"
	"github.com/leapstack-labs/ecl/internal/discovery"
	"github.com/leapstack-labs/ecl/pkg/schema"
	"github.com/leapstack-labs/ecl/pkg/validate"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Renderer  *output.Renderer
	Catalog   *schema.Catalog
	Validator *validate.Validator
}

// NewCommandContext creates a CommandContext with the keyword catalog and
// a validator built from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	c := NewCommandContextWithoutCatalog(cmd)

	catalog, err := loadCatalog(c.Cfg)
	if err != nil {
		return nil, err
	}
	c.Catalog = catalog
	c.Validator = validate.New(validate.Config{
		Catalog:  catalog,
		Settings: c.Cfg.Settings(),
		Logger:   c.Logger,
	})
	return c, nil
}

// NewCommandContextWithoutCatalog creates a CommandContext with only
// configuration, logger and renderer.
func NewCommandContextWithoutCatalog(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// WithFormat replaces the renderer when a command-level format flag is set.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) *CommandContext {
	if format != "" {
		c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	return c
}

// getConfig returns the current configuration, or defaults when none
// was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// loadCatalog returns the built-in catalog merged with the configured
// keyword registrations.
func loadCatalog(cfg *config.Config) (*schema.Catalog, error) {
	catalog := schema.Default()
	if len(cfg.Schemas) == 0 {
		return catalog, nil
	}

	regs := make([]*schema.Registration, 0, len(cfg.Schemas))
	for _, path := range cfg.Schemas {
		reg, err := schema.LoadRegistration(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load keyword registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return catalog.MergeRegistrations(regs...), nil
}

// discoverFiles expands the command arguments into .editorconfig files.
func discoverFiles(cfg *config.Config, args []string) ([]string, error) {
	files, err := discovery.Discover(discovery.Options{
		Paths:  args,
		Ignore: cfg.Lint.IgnorePaths,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", ".editorconfig")
	}
	return files, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// parseCategories parses a list of keyword category names.
func parseCategories(names []string) ([]schema.Category, error) {
	var out []schema.Category
	for _, name := range names {
		cat, ok := schema.ParseCategory(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown keyword category %q", name)
		}
		out = append(out, cat)
	}
	return out, nil
}
