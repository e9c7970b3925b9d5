package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/ecl/internal/cli/output"
	"github.com/leapstack-labs/ecl/pkg/format"
	"github.com/leapstack-labs/ecl/pkg/lint"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if _, err := format.ParsePolicy(c.Format.Align); err != nil {
		errs = append(errs, err)
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}
	for _, code := range c.Lint.Disabled {
		if !lint.IsKnownCode(strings.ToUpper(strings.TrimSpace(code))) {
			errs = append(errs, fmt.Errorf("lint.disabled: unknown error code %q", code))
		}
	}
	return errors.Join(errs...)
}
