package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"finsem-hq/bizgate/pkg/cli"
	"finsem-hq/bizgate/pkg/config"
	"finsem-hq/bizgate/pkg/telemetry/logging"
	"finsem-hq/bizgate/pkg/telemetry/metrics"
)

var checkFlags struct {
	inputs      []string
	mode        string
	maxRefDepth int
	report      string
	format      string
	color       string
	failOnWarn  bool
	workers     int
	metricsFile string
	dsn         string
	tenant      string
}

var checkCmd = &cobra.Command{
	Use:   "check [PATH...]",
	Short: "Run a gate over dictionary snapshots",
	Long: `Run the import or publish gate over dictionary snapshots.

Inputs are CSV files, Markdown files containing a dictionary table, or
directories scanned recursively for .csv, .md and .markdown files. A
biz_metadata table can be added with --sql (postgres://, sqlite:// or
sqlite3:// DSN).

The command exits 0 when the gate passed, 2 when it reported errors (or
warnings with --fail-on-warn) and 1 when the inputs could not be read.

Examples:
  # Import gate over a directory
  bizgate check -i dict/

  # Publish gate with a JSON report for CI
  bizgate check -i dict/ --mode publish -o out/report.json

  # CSV listing of violations
  bizgate check -i dict/company.csv --format csv

  # Read one tenant from a SQLite snapshot
  bizgate check --sql sqlite://snapshot.db --tenant t1

  # Export metrics for node_exporter's textfile collector
  bizgate check -i dict/ --metrics-file /var/lib/node_exporter/bizgate.prom`,
	Args: cobra.ArbitraryArgs,
	RunE: checkDictionary,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceVarP(&checkFlags.inputs, "input", "i", nil, "input file or directory (repeatable)")
	checkCmd.Flags().StringVar(&checkFlags.mode, "mode", config.DefaultGateMode, "gate to run: import, publish")
	checkCmd.Flags().IntVar(&checkFlags.maxRefDepth, "max-ref-depth", config.DefaultMaxRefDepth, "maximum typeref chain length")
	checkCmd.Flags().StringVarP(&checkFlags.report, "report", "o", "", "write the JSON report to this file")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", config.DefaultOutputFormat, "stdout format: text, json, csv")
	checkCmd.Flags().StringVar(&checkFlags.color, "color", config.DefaultOutputColor, "colorize text output: auto, always, never")
	checkCmd.Flags().BoolVar(&checkFlags.failOnWarn, "fail-on-warn", false, "fail when only warnings were reported")
	checkCmd.Flags().IntVar(&checkFlags.workers, "workers", 0, "records evaluated in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().StringVar(&checkFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	checkCmd.Flags().StringVar(&checkFlags.dsn, "sql", "", "read a biz_metadata table from this DSN")
	checkCmd.Flags().StringVar(&checkFlags.tenant, "tenant", "", "restrict --sql to one tenant")
}

func checkDictionary(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	applyCheckFlags(cmd, cfg, args)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return runCheck(cmd.Context(), cfg, logger, cmd.OutOrStdout())
}

// applyCheckFlags overrides cfg with the flags set on the command line.
// Positional arguments are added to the inputs.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	flags := cmd.Flags()

	if flags.Changed("input") {
		cfg.Inputs.Paths = checkFlags.inputs
	}
	if len(args) > 0 {
		cfg.Inputs.Paths = append(append([]string(nil), cfg.Inputs.Paths...), args...)
	}
	if flags.Changed("mode") {
		cfg.Gate.Mode = checkFlags.mode
	}
	if flags.Changed("max-ref-depth") {
		cfg.Gate.MaxRefDepth = checkFlags.maxRefDepth
	}
	if flags.Changed("report") {
		cfg.Output.Path = checkFlags.report
	}
	if flags.Changed("format") {
		cfg.Output.Format = checkFlags.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = checkFlags.color
	}
	if flags.Changed("fail-on-warn") {
		cfg.Gate.FailOnWarn = checkFlags.failOnWarn
	}
	if flags.Changed("workers") {
		cfg.Engine.Workers = checkFlags.workers
	}
	if flags.Changed("metrics-file") {
		cfg.Telemetry.Metrics.Textfile = checkFlags.metricsFile
	}
	if cfg.Telemetry.Metrics.Textfile != "" {
		cfg.Telemetry.Metrics.Enabled = true
	}
	if flags.Changed("sql") {
		cfg.Inputs.DSN = checkFlags.dsn
	}
	if flags.Changed("tenant") {
		cfg.Inputs.Tenant = checkFlags.tenant
	}
}

// runCheck runs one gate and writes its report to w, to the report file
// and to the metrics textfile as configured. A failed gate is returned as
// an *cli.ExitError with code 2.
func runCheck(ctx context.Context, cfg *config.Config, log *logging.Logger, w io.Writer) error {
	format, err := cli.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return cli.NewConfigError("output.format", err.Error())
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	gr, err := runGate(ctx, cfg, log, collector)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	if err := cli.NewFormatter(format, cli.ColorMode(cfg.Output.Color)).FormatTo(w, gr); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Output.Path != "" {
		if err := writeReportFile(cfg.Output.Path, gr); err != nil {
			return err
		}
		log.Debug("report written", "path", cfg.Output.Path)
	}

	if cfg.Telemetry.Metrics.Textfile != "" {
		if err := collector.WriteTextfile(cfg.Telemetry.Metrics.Textfile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		log.Debug("metrics written", "path", cfg.Telemetry.Metrics.Textfile)
	}

	if !gr.Passed {
		return cli.NewGateFailedError()
	}
	return nil
}
