package collector

import (
	"errors"
	"time"
)

// DefaultInterval is the default period between collection cycles. It is
// deliberately longer than a typical full read pass so that cycles never
// overlap.
const DefaultInterval = 5 * time.Second

// Config holds the configuration for the collection scheduler.
type Config struct {
	// Interval is the period between cycles.
	// Must be at least 1s. Default: 5s.
	Interval time.Duration `yaml:"interval"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Interval < time.Second {
		return errors.New("collector: config: Interval must be at least 1s")
	}
	return nil
}
