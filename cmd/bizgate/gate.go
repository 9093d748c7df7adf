package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"finsem-hq/bizgate/pkg/bizmeta/rules"
	"finsem-hq/bizgate/pkg/cli"
	"finsem-hq/bizgate/pkg/config"
	"finsem-hq/bizgate/pkg/loader"
	"finsem-hq/bizgate/pkg/telemetry/logging"
	"finsem-hq/bizgate/pkg/telemetry/metrics"
)

// runGate loads the configured inputs, runs the configured gate over them
// and records the outcome in collector.
func runGate(ctx context.Context, cfg *config.Config, log *logging.Logger, collector *metrics.Collector) (*cli.GateReport, error) {
	rc, err := cfg.RulesConfig()
	if err != nil {
		return nil, err
	}
	engine, err := rules.NewEngine(rc)
	if err != nil {
		return nil, err
	}

	res, err := loader.Load(ctx, loader.Options{
		Paths:      cfg.Inputs.Paths,
		Extensions: cfg.Inputs.Extensions,
		DSN:        cfg.Inputs.DSN,
		Tenant:     cfg.Inputs.Tenant,
		Logger:     log.Slog(),
		Observer:   collector,
	})
	if err != nil {
		return nil, err
	}

	report := engine.Run(res.Records)
	gr := cli.NewGateReport(res, report, cfg.Gate.FailOnWarn)
	collector.RecordRun(report, gr.Passed)

	ctx = logging.WithRunID(ctx, report.RunID)
	ctx = logging.WithMode(ctx, string(report.Mode))
	if cfg.Inputs.Tenant != "" {
		ctx = logging.WithTenant(ctx, cfg.Inputs.Tenant)
	}
	log.InfoContext(ctx, "gate run finished",
		"passed", gr.Passed,
		"rows", report.RowCount,
		"errors", report.ErrorCount,
		"warnings", report.WarnCount,
		"skipped_rows", len(gr.SkippedRows),
		"inputs", len(gr.ResolvedInputs),
		"duration_ms", report.DurationMS,
	)

	return gr, nil
}

// writeReportFile writes gr as indented JSON, creating parent directories.
func writeReportFile(path string, gr *cli.GateReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(gr, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report %q: %w", path, err)
	}
	return nil
}
