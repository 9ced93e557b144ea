// Package cmd implements the sensord CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	listen   string
	hubURL   string
)

// Build info set from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersionInfo sets the version info from build-time ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("sensord version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate))
}

var rootCmd = &cobra.Command{
	Use:   "sensord [debug]",
	Short: "sensord exports USB sensor readings as scrapeable metrics",
	Long: "sensord reads values from locally attached sensor modules through a\n" +
		"device hub, refreshes an in-memory metric store on a fixed cadence, and\n" +
		"serves the store as a text metrics snapshot over HTTP.\n\n" +
		"With the optional \"debug\" argument, one discovery pass is dumped\n" +
		"human-readably before the normal serving loop starts.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"debug"},
	RunE:      runDaemon,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "/etc/sensord/config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&listen, "listen", "", "exposition listen address (overrides config)")
	rootCmd.PersistentFlags().StringVar(&hubURL, "hub", "", "device hub base URL (overrides config)")

	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("sensord version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
