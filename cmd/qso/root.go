package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/qso"
	"github.com/aretw0/qso/internal/config"
	"github.com/aretw0/qso/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qso",
	Short: "qso follows structured radio conversations phase by phase",
	Long: `qso classifies decoded FT8 messages into the phases of a QSO and reports
when the conversation advances, stalls or finishes.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringP("protocol", "p", "", "Protocol definition file (default: built-in FT8 pounce)")
	rootCmd.PersistentFlags().Int("threshold", 0, "Failure threshold (default 3)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig merges the configuration file with the flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	flags := cmd.Flags()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if flags.Changed("protocol") {
		cfg.Protocol, _ = flags.GetString("protocol")
	}
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetInt("threshold")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("separator") != nil && flags.Changed("separator") {
		cfg.Separator, _ = flags.GetString("separator")
	}
	if flags.Lookup("stop-on-terminal") != nil && flags.Changed("stop-on-terminal") {
		cfg.StopOnTerminal, _ = flags.GetBool("stop-on-terminal")
	}
	if flags.Lookup("abort-on-threshold") != nil && flags.Changed("abort-on-threshold") {
		cfg.AbortOnThreshold, _ = flags.GetBool("abort-on-threshold")
	}

	return cfg, cfg.Validate()
}

// newEngine builds the engine described by cfg.
func newEngine(cfg config.Config, logger *slog.Logger, opts ...qso.Option) (*qso.Engine, error) {
	base := []qso.Option{
		qso.WithThreshold(cfg.Threshold),
		qso.WithLogger(logger),
	}
	if cfg.Protocol != "" {
		base = append(base, qso.WithProtocolFile(cfg.Protocol))
	}
	return qso.New(append(base, opts...)...)
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(cfg.Level())
}
