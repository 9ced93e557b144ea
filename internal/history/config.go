// Package history optionally persists per-cycle sensor readings to a local
// SQLite database for offline inspection.
package history

import "errors"

// DefaultPath is the default database file location.
const DefaultPath = "/var/lib/sensord/history.db"

// Config holds the configuration for cycle history persistence.
type Config struct {
	// Enabled controls whether readings are persisted.
	// Default: false.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file path.
	// Default: /var/lib/sensord/history.db
	Path string `yaml:"path"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = DefaultPath
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.Enabled && c.Path == "" {
		return errors.New("history: config: Path is required")
	}
	return nil
}
