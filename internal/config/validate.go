package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"json", "text"}
	outputFormats = []string{"json", "pretty", "csv", "xlsx", "excel", "table"}
)

// Validate checks value ranges. Load calls it automatically.
func (c *Config) Validate() error {
	if y := c.Engine.ReferenceYear; y < 1900 || y > 2200 {
		return fmt.Errorf("engine.reference_year must be between 1900 and 2200 (got %d)", y)
	}
	if c.Engine.Scale <= 0 {
		return fmt.Errorf("engine.scale must be > 0 (got %v)", c.Engine.Scale)
	}
	if !oneOf(c.Output.Format, outputFormats) {
		return fmt.Errorf("output.format must be one of %s (got %q)", strings.Join(outputFormats, ", "), c.Output.Format)
	}
	if !oneOf(c.Log.Level, logLevels) {
		return fmt.Errorf("log.level must be one of %s (got %q)", strings.Join(logLevels, ", "), c.Log.Level)
	}
	if !oneOf(c.Log.Format, logFormats) {
		return fmt.Errorf("log.format must be one of %s (got %q)", strings.Join(logFormats, ", "), c.Log.Format)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	return slices.Contains(allowed, strings.ToLower(strings.TrimSpace(v)))
}
