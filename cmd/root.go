package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/marathon-api/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the command tree. Each call returns independent commands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "marathon-api",
		Short: "Movie Marathon API server",
		Long: `Marathon API - build, save and replay movie marathons

The server keeps one current marathon draft that every connected client
observes, completes partially known movies from the movie catalog in the
background, and stores named marathons in a pluggable persistence store.

Features:
  • Current draft with marathon mode and live server-sent events
  • Named marathons with case-insensitive unique names
  • SQLite, file or in-memory persistence with write-behind flushing
  • Movie detail completion through TMDB`,
		SilenceUsage: true,
	}

	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")

	rootCmd.AddCommand(
		newServeCmd(),
		newVersionCmd(),
		newMigrateCmd(),
		newMarathonsCmd(),
	)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig initializes configuration, applies logging flag overrides and
// configures the standard logger
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}

	if flags := cmd.Flags(); flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		viper.Set("logging.level", level)
	}
	if flags := cmd.Flags(); flags.Changed("json-logs") {
		jsonLogs, _ := flags.GetBool("json-logs")
		viper.Set("logging.json", jsonLogs)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	configureLogging(cfg.Logging, cmd.ErrOrStderr())
	return cfg, nil
}
