// Package config loads msgrisk settings from a YAML file, a .env file and
// MSGRISK_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all msgrisk configuration.
type Config struct {
	// Scoring service endpoint
	Service ServiceConfig `yaml:"service"`

	// Persisted counter state
	State StateConfig `yaml:"state"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig configures the scoring service client.
type ServiceConfig struct {
	URL string `yaml:"url"`
	// Timeout bounds one request. "0s" or empty means no deadline.
	Timeout          string `yaml:"timeout"`
	MaxResponseBytes int64  `yaml:"max_response_bytes"`
}

// StateConfig configures where the daily counter is kept.
type StateConfig struct {
	Backend string `yaml:"backend"` // sqlite, json, memory
	Path    string `yaml:"path"`
	// Watch follows counter writes from other running instances.
	Watch bool `yaml:"watch"`
}

// envOverrides lists the environment variables read on top of the file.
type envOverrides struct {
	ServiceURL     string `env:"MSGRISK_SERVICE_URL"`
	ServiceTimeout string `env:"MSGRISK_SERVICE_TIMEOUT"`
	StateBackend   string `env:"MSGRISK_STATE_BACKEND"`
	StatePath      string `env:"MSGRISK_STATE_PATH"`
	LogLevel       string `env:"MSGRISK_LOG_LEVEL"`
	LogFile        string `env:"MSGRISK_LOG_FILE"`
	DarkMode       bool   `env:"MSGRISK_DARK_MODE"`
}

// ValidBackends lists the supported state backends.
var ValidBackends = []string{"sqlite", "json", "memory"}

// DefaultDir returns the per-user state directory (~/.msgrisk).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".msgrisk"
	}
	return filepath.Join(home, ".msgrisk")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	dir := DefaultDir()
	return &Config{
		Service: ServiceConfig{
			URL:              "http://127.0.0.1:5001/analyze",
			Timeout:          "0s",
			MaxResponseBytes: 1 << 20,
		},
		State: StateConfig{
			Backend: "sqlite",
			Path:    filepath.Join(dir, "state.db"),
			Watch:   true,
		},
		UI: *DefaultUIConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dir, "msgrisk.log"),
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.ServiceURL != "" {
		c.Service.URL = o.ServiceURL
	}
	if o.ServiceTimeout != "" {
		c.Service.Timeout = o.ServiceTimeout
	}
	if o.StateBackend != "" {
		c.State.Backend = o.StateBackend
	}
	if o.StatePath != "" {
		c.State.Path = o.StatePath
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
	if o.DarkMode {
		c.UI.DarkMode = true
	}
	return nil
}

// GetServiceTimeout returns the request timeout; 0 means none.
func (c *Config) GetServiceTimeout() time.Duration {
	return parseDuration(c.Service.Timeout, 0)
}

// Validate checks the configuration for values the program cannot use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid service url %q (want http(s)://host/path)", c.Service.URL)
	}
	if c.Service.Timeout != "" {
		if d, err := time.ParseDuration(c.Service.Timeout); err != nil || d < 0 {
			return fmt.Errorf("invalid service timeout %q", c.Service.Timeout)
		}
	}

	validBackend := false
	for _, b := range ValidBackends {
		if c.State.Backend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return fmt.Errorf("invalid state backend: %s (valid: %v)", c.State.Backend, ValidBackends)
	}
	if c.State.Backend != "memory" && c.State.Path == "" {
		return fmt.Errorf("state path required for backend %s", c.State.Backend)
	}

	if err := c.UI.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// parseDuration parses s, returning def for empty or invalid values.
func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}
