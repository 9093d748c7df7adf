// Package logging provides structured logging for bizgate.
//
// The package wraps log/slog with level and format parsing that matches the
// telemetry.logging configuration section, and with context helpers that
// attach gate run fields (run_id, mode, tenant_id, trigger) to log entries.
//
// Logs go to stderr by default; stdout is reserved for reports.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	logger.SetDefault()
//
//	ctx = logging.WithRunID(ctx, report.RunID)
//	logger.InfoContext(ctx, "gate finished", "errors", report.ErrorCount)
package logging
