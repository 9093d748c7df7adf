package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"finsem-hq/bizgate/pkg/cli"
	"finsem-hq/bizgate/pkg/config"
	"finsem-hq/bizgate/pkg/server"
	"finsem-hq/bizgate/pkg/telemetry/health"
	"finsem-hq/bizgate/pkg/telemetry/logging"
	"finsem-hq/bizgate/pkg/telemetry/metrics"
	"finsem-hq/bizgate/pkg/watch"
)

var watchFlags struct {
	inputs      []string
	mode        string
	report      string
	failOnWarn  bool
	schedule    string
	debounce    time.Duration
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch [PATH...]",
	Short: "Re-run a gate when inputs change or on a schedule",
	Long: `Run a gate once, then again whenever an input file changes and,
optionally, on a cron schedule. Each run logs a summary; with --report
the JSON report is rewritten after every run.

Changes to the configuration file reload it before the next run. Bursts
of file events are coalesced (--debounce) and runs never overlap.

With --metrics-addr the gate metrics are served over HTTP for Prometheus,
next to /healthz, /readyz (ready once a run has loaded its inputs),
/status (last run summary) and /version.

Examples:
  # Re-validate on every save
  bizgate watch -i dict/

  # Publish gate every night and on changes, with metrics
  bizgate watch -i dict/ --mode publish --schedule '0 2 * * *' --metrics-addr :9108`,
	Args: cobra.ArbitraryArgs,
	RunE: watchDictionary,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringSliceVarP(&watchFlags.inputs, "input", "i", nil, "input file or directory (repeatable)")
	watchCmd.Flags().StringVar(&watchFlags.mode, "mode", config.DefaultGateMode, "gate to run: import, publish")
	watchCmd.Flags().StringVarP(&watchFlags.report, "report", "o", "", "rewrite the JSON report to this file after each run")
	watchCmd.Flags().BoolVar(&watchFlags.failOnWarn, "fail-on-warn", false, "count runs with only warnings as failed")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron expression for periodic runs")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", config.DefaultWatchDebounce, "quiet period before a change triggers a run")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

func watchDictionary(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	// resolve applies the command line to a freshly loaded configuration,
	// so reloads keep the flags.
	resolve := func(base *config.Config) (*config.Config, error) {
		c := *base
		cfg := &c
		if flags.Changed("input") {
			cfg.Inputs.Paths = watchFlags.inputs
		}
		if len(args) > 0 {
			cfg.Inputs.Paths = append(append([]string(nil), cfg.Inputs.Paths...), args...)
		}
		if flags.Changed("mode") {
			cfg.Gate.Mode = watchFlags.mode
		}
		if flags.Changed("report") {
			cfg.Output.Path = watchFlags.report
		}
		if flags.Changed("fail-on-warn") {
			cfg.Gate.FailOnWarn = watchFlags.failOnWarn
		}
		if flags.Changed("schedule") {
			cfg.Watch.Schedule = watchFlags.schedule
		}
		if flags.Changed("debounce") {
			cfg.Watch.Debounce = watchFlags.debounce
		}
		if flags.Changed("metrics-addr") {
			cfg.Telemetry.Metrics.ListenAddress = watchFlags.metricsAddr
		}
		if cfg.Telemetry.Metrics.ListenAddress != "" {
			cfg.Telemetry.Metrics.Enabled = true
		}
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := resolve(config.MustGetConfig())
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	return runWatch(ctx, cfg, configFileToWatch(), resolve, logger)
}

// configFileToWatch returns the configuration file whose changes trigger
// a reload, or "" when running on defaults.
func configFileToWatch() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(config.DefaultConfigPath); err == nil {
		return config.DefaultConfigPath
	}
	return ""
}

// runWatch runs the gate once and then on every change and scheduled
// tick until ctx is cancelled. Gate failures are logged, not returned.
func runWatch(ctx context.Context, cfg *config.Config, configFile string,
	resolve func(*config.Config) (*config.Config, error), log *logging.Logger) error {
	if len(cfg.Inputs.Paths) == 0 && cfg.Inputs.DSN == "" {
		return cli.NewConfigError("inputs.paths", "watch needs at least one input path or a DSN")
	}

	var current atomic.Pointer[config.Config]
	current.Store(cfg)

	metricsCfg := cfg.Telemetry.Metrics
	collector := metrics.NewCollector(&metricsCfg, nil)

	tracker := health.NewRunTracker()

	runner := watch.NewRunner(func(ctx context.Context, trigger watch.Trigger) {
		c := current.Load()
		ctx = logging.WithTrigger(ctx, string(trigger))
		gr, err := runGate(ctx, c, log, collector)
		if err != nil {
			log.ErrorContext(ctx, "gate run failed", "error", err)
			tracker.Record(health.RunSummary{Mode: c.Gate.Mode, Trigger: string(trigger), Error: err.Error()})
			return
		}
		tracker.Record(health.RunSummary{
			RunID:    gr.RunID,
			Mode:     string(gr.Mode),
			Trigger:  string(trigger),
			Passed:   gr.Passed,
			Rows:     gr.RowCount,
			Errors:   gr.ErrorCount,
			Warnings: gr.WarnCount,
		})
		if c.Output.Path != "" {
			if err := writeReportFile(c.Output.Path, gr); err != nil {
				log.ErrorContext(ctx, "failed to write report", "error", err)
			}
		}
	})

	wcfg := watch.DefaultFileWatcherConfig()
	wcfg.Paths = cfg.Inputs.Paths
	wcfg.Extensions = cfg.Inputs.Extensions
	wcfg.DebounceInterval = cfg.Watch.Debounce
	if configFile != "" {
		wcfg.Files = []string{configFile}
	}

	// Triggers are built before any goroutine starts; nothing may be
	// left running when setup fails.
	var watcher *watch.FileWatcher
	if len(wcfg.Paths) > 0 {
		w, err := watch.NewFileWatcher(wcfg, log.Slog())
		if err != nil {
			return err
		}
		defer w.Stop()
		watcher = w
	}

	var scheduler *watch.Scheduler
	if cfg.Watch.Schedule != "" {
		s, err := watch.NewScheduler(cfg.Watch.Schedule, func(ctx context.Context) {
			runner.Request(ctx, watch.TriggerSchedule)
		}, log.Slog())
		if err != nil {
			return err
		}
		scheduler = s
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	if watcher != nil {
		g.Go(func() error {
			return watcher.Watch(ctx, func(changed []string) {
				if configFile != "" && contains(changed, configFile) {
					reload(configFile, resolve, &current, log)
				}
				log.Debug("inputs changed", "paths", changed)
				runner.Request(ctx, watch.TriggerChange)
			})
		})
	}

	if scheduler != nil {
		if err := scheduler.Start(ctx); err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		defer scheduler.Stop()
		if next := scheduler.NextRun(); next != nil {
			log.Info("scheduled runs enabled", "schedule", cfg.Watch.Schedule, "next_run", next.Format(time.RFC3339))
		}
	}

	if addr := cfg.Telemetry.Metrics.ListenAddress; addr != "" {
		checker := health.New(0)
		checker.RegisterCheck("last_run", tracker.Check)

		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
		health.Mount(mux, checker, tracker, health.VersionInfo{Version: Version, Commit: GitCommit, BuildTime: BuildDate})

		srv := server.NewServer(server.Config{ListenAddress: addr}, mux, log.Slog())
		g.Go(func() error {
			return srv.Start(ctx)
		})
	}

	runner.Request(ctx, watch.TriggerInitial)

	err := g.Wait()
	runner.Wait()
	log.Info("watch stopped", "runs", tracker.Runs())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// reload replaces the configuration used by later runs. Invalid or
// unreadable files keep the previous configuration.
func reload(path string, resolve func(*config.Config) (*config.Config, error),
	current *atomic.Pointer[config.Config], log *logging.Logger) {
	if err := config.ReloadConfig(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("configuration file removed, keeping previous configuration", "path", path)
			return
		}
		log.Error("configuration reload failed, keeping previous configuration", "path", path, "error", err)
		return
	}
	cfg, err := resolve(config.MustGetConfig())
	if err != nil {
		log.Error("reloaded configuration is invalid, keeping previous configuration", "path", path, "error", err)
		return
	}
	current.Store(cfg)
	log.Info("configuration reloaded", "path", path, "mode", cfg.Gate.Mode)
}

func contains(paths []string, target string) bool {
	target = filepath.Clean(target)
	for _, p := range paths {
		if filepath.Clean(p) == target {
			return true
		}
	}
	return false
}
