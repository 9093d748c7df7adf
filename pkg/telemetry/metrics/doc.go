// Package metrics provides Prometheus metrics for bizgate runs.
//
// A Collector owns a private registry and three metric groups:
//
//   - Gate metrics: runs by mode and result, run duration, records checked,
//     violations by rule ID and severity, per-tenant violation counts
//   - Resolver metrics: typeref memo hits, misses and size
//   - Loader metrics: records read and rows skipped per source kind
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	report := engine.Run(records)
//	collector.RecordRun(report, report.Passed(cfg.Gate.FailOnWarn))
//
// One-shot runs export with WriteTextfile, for node_exporter's textfile
// collector. The watch command serves Handler on telemetry.metrics.path:
//
//	# HELP bizgate_gate_runs_total Total number of gate runs
//	# TYPE bizgate_gate_runs_total counter
//	bizgate_gate_runs_total{mode="publish",result="failed"} 3
//
// # Cardinality Management
//
// Rule IDs, modes and severities are closed sets. Tenant IDs are not: after
// DefaultMaxTenants distinct tenants further tenants are counted as "other".
package metrics
