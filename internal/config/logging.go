package config

import "fmt"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	// File receives log output. Empty means stderr.
	File string `yaml:"file"`
	// Categories disables individual subsystems when set to false.
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// IsCategoryEnabled reports whether category should log. Categories not
// listed are enabled.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	switch c.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log format %q (valid: json, console)", c.Format)
	}
	return nil
}
