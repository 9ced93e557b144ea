package agent

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/probegrid/sensord/internal/collector"
	"github.com/probegrid/sensord/internal/device/hub"
	"github.com/probegrid/sensord/internal/exposition"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := ParseConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Hub.BaseURL != hub.DefaultBaseURL {
		t.Errorf("Hub.BaseURL = %q, want %q", cfg.Hub.BaseURL, hub.DefaultBaseURL)
	}
	if cfg.Collector.Interval != collector.DefaultInterval {
		t.Errorf("Collector.Interval = %v, want %v", cfg.Collector.Interval, collector.DefaultInterval)
	}
	if cfg.Exposition.Listen != exposition.DefaultListen {
		t.Errorf("Exposition.Listen = %q, want %q", cfg.Exposition.Listen, exposition.DefaultListen)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
}

func TestParseConfig_FullFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
hub:
  base_url: http://192.168.1.50:4444
  request_timeout: 3s
collector:
  interval: 10s
exposition:
  listen: ":9100"
history:
  enabled: true
  path: /tmp/sensord-history.db
`)

	cfg, err := ParseConfig(path)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Hub.BaseURL != "http://192.168.1.50:4444" {
		t.Errorf("Hub.BaseURL = %q", cfg.Hub.BaseURL)
	}
	if cfg.Hub.RequestTimeout != 3*time.Second {
		t.Errorf("Hub.RequestTimeout = %v", cfg.Hub.RequestTimeout)
	}
	if cfg.Collector.Interval != 10*time.Second {
		t.Errorf("Collector.Interval = %v", cfg.Collector.Interval)
	}
	if cfg.Exposition.Listen != ":9100" {
		t.Errorf("Exposition.Listen = %q", cfg.Exposition.Listen)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/sensord-history.db" {
		t.Errorf("History = %+v", cfg.History)
	}
}

func TestParseConfig_PartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")

	cfg, err := ParseConfig(path)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Collector.Interval != collector.DefaultInterval {
		t.Errorf("Collector.Interval = %v, want default", cfg.Collector.Interval)
	}
}

func TestParseConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "log_level: [unclosed\n")
	if _, err := ParseConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseConfig_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: verbose\n")
	if _, err := ParseConfig(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestParseConfig_InvalidInterval(t *testing.T) {
	path := writeConfig(t, "collector:\n  interval: 100ms\n")
	if _, err := ParseConfig(path); err == nil {
		t.Error("expected validation error for sub-second interval")
	}
}
