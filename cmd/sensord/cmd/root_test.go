package cmd

import (
	"bytes"
	"strings"
	"testing"
)

// resetFlags clears flag state left on the shared rootCmd by an Execute
// call so later tests see a clean command.
func resetFlags(t *testing.T, names ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, name := range names {
			if f := rootCmd.Flags().Lookup(name); f != nil {
				_ = f.Value.Set("false")
				f.Changed = false
			}
		}
	})
}

func TestRootCommand_Help(t *testing.T) {
	resetFlags(t, "help")
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	_ = rootCmd.Execute()

	output := buf.String()
	if !strings.Contains(output, "sensord") {
		t.Errorf("help output should contain 'sensord', got: %s", output)
	}
	if !strings.Contains(output, "debug") {
		t.Errorf("help output should mention the debug argument, got: %s", output)
	}
}

func TestRootCommand_Version(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	resetFlags(t, "version")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--version"})

	_ = rootCmd.Execute()

	output := buf.String()
	if !strings.Contains(output, "1.2.3") {
		t.Errorf("version output should contain '1.2.3', got: %s", output)
	}
	if !strings.Contains(output, "abc123") {
		t.Errorf("version output should contain 'abc123', got: %s", output)
	}
}

func TestRootCommand_RejectsUnknownArgument(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"bogus"})

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for unknown positional argument")
	}
}

func TestRootCommand_RejectsExtraArguments(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"debug", "extra"})

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for extra positional arguments")
	}
}
