// Package hub implements the device.Source backed by the HTTP API of a
// local sensor hub daemon.
package hub

import (
	"errors"
	"strings"
	"time"
)

// DefaultBaseURL is the default hub API address.
const DefaultBaseURL = "http://127.0.0.1:4444"

// DefaultConnectTimeout is the default TCP connect timeout.
const DefaultConnectTimeout = 5 * time.Second

// DefaultRequestTimeout is the default HTTP request timeout. This is the
// only bound on how long a single device read can block a cycle.
const DefaultRequestTimeout = 10 * time.Second

// Config holds the configuration for the hub client.
type Config struct {
	// BaseURL is the hub API base URL.
	// Default: http://127.0.0.1:4444
	BaseURL string `yaml:"base_url"`

	// ConnectTimeout is the maximum time to wait for a TCP connection.
	// Default: 5s
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	// RequestTimeout is the maximum time for a complete request/response.
	// Default: 10s
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
}

// Validate checks that configuration values are acceptable.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return errors.New("hub: config: BaseURL must be an http or https URL")
	}
	return nil
}
