package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finsem-hq/bizgate/pkg/cli"
	"finsem-hq/bizgate/pkg/config"
	"finsem-hq/bizgate/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string

	// logger is built from the resolved configuration before any
	// subcommand runs.
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bizgate",
	Short: "Bizgate - quality gate for biz_metadata dictionaries",
	Long: `Bizgate validates biz_metadata dictionary snapshots before they are
imported or published.

Records are read from CSV files, Markdown tables or a biz_metadata table
and checked by one of two gates:
  - import:  field, scope, type syntax, typeref, unit, identifier and
             hierarchy rules
  - publish: the import rules plus object and array completeness

Configuration is read from bizgate.yaml when present and can be
overridden with BIZGATE_* environment variables and flags.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits with the code of its outcome.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if !quiet(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

// quiet reports whether the command already reported err on stdout.
func quiet(err error) bool {
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	return exitErr.Err == nil || errors.Is(exitErr.Err, cli.ErrGateFailed)
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: ./bizgate.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, json, console")
}

// setup resolves the configuration and the logger shared by all commands.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	config.SetConfig(cfg)

	lc := cfg.Telemetry.Logging
	if logLevel != "" {
		lc.Level = logLevel
	}
	if logFormat != "" {
		lc.Format = logFormat
	}
	if verbose {
		lc.Level = "debug"
	}

	l, err := logging.New(logging.FromConfig(lc, cmd.ErrOrStderr()))
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	l.SetDefault()
	logger = l
	return nil
}

// currentConfig returns a copy of the global configuration that a command
// may adjust with its flags.
func currentConfig() *config.Config {
	cfg := *config.MustGetConfig()
	return &cfg
}
