// Package agent holds the top-level daemon configuration.
package agent

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/probegrid/sensord/internal/collector"
	"github.com/probegrid/sensord/internal/device/hub"
	"github.com/probegrid/sensord/internal/exposition"
	"github.com/probegrid/sensord/internal/history"
)

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// Config is the top-level configuration for the sensord daemon. It
// aggregates all subsystem configurations and is populated from a YAML
// configuration file via ParseConfig.
type Config struct {
	// LogLevel is the log level: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	Hub        hub.Config        `yaml:"hub"`
	Collector  collector.Config  `yaml:"collector"`
	Exposition exposition.Config `yaml:"exposition"`
	History    history.Config    `yaml:"history"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Hub.ApplyDefaults()
	c.Collector.ApplyDefaults()
	c.Exposition.ApplyDefaults()
	c.History.ApplyDefaults()
}

// Validate checks that required fields are set and values are acceptable.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("agent: config: invalid log level %q", c.LogLevel)
	}
	if err := c.Hub.Validate(); err != nil {
		return err
	}
	if err := c.Collector.Validate(); err != nil {
		return err
	}
	if err := c.Exposition.Validate(); err != nil {
		return err
	}
	if err := c.History.Validate(); err != nil {
		return err
	}
	return nil
}

// ParseConfig reads a YAML configuration file and returns a Config with
// defaults applied and values validated. A missing file is not an error:
// the daemon is fully functional with defaults alone.
func ParseConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Fall through to defaults.
	case err != nil:
		return nil, fmt.Errorf("agent: config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("agent: config: parse %s: %w", path, err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
