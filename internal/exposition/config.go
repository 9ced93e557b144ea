// Package exposition serves the metric store snapshot over HTTP in the text
// exposition format.
package exposition

import (
	"errors"
	"time"
)

// DefaultListen is the default listen address for the exposition endpoint.
const DefaultListen = ":8000"

// DefaultShutdownTimeout is the default graceful shutdown timeout.
const DefaultShutdownTimeout = 5 * time.Second

// Config holds the configuration for the exposition server.
type Config struct {
	// Listen is the TCP listen address.
	// Default: ":8000"
	Listen string `yaml:"listen"`

	// ShutdownTimeout is the graceful shutdown timeout.
	// Default: 5s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("exposition: config: Listen is required")
	}
	return nil
}
