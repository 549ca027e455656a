package main

import (
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/willowdom"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	interval   time.Duration
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to inspector config (TOML)")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", 0, "Time between reconciliation passes (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every pass")
	rootCmd.AddCommand(runCmd, dumpCmd)
}

var rootCmd = &cobra.Command{
	Use:           "willowdom",
	Short:         "Inspect and edit a live scene graph through an overlay",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

func initLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", "willowdom").Logger()
	log.Logger = logger
	return logger
}

// loadConfig returns the config file's settings, or the defaults when no file
// was given, with --interval applied on top.
func loadConfig(cmd *cobra.Command) (willowdom.Config, error) {
	cfg := willowdom.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = willowdom.LoadConfig(configPath)
		if err != nil {
			return willowdom.Config{}, err
		}
	}
	if cmd.Flags().Changed("interval") {
		if interval <= 0 {
			return willowdom.Config{}, fmt.Errorf("--interval must be positive, got %s", interval)
		}
		cfg.UpdateInterval = interval
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
