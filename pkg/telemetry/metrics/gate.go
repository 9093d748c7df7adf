package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"finsem-hq/bizgate/pkg/config"
)

// GateMetrics tracks gate runs.
//
// Metrics:
//   - bizgate_gate_runs_total: runs by mode and result (passed, failed)
//   - bizgate_gate_run_duration_seconds: run duration histogram
//   - bizgate_gate_records_checked_total: records evaluated
//   - bizgate_gate_violations_total: violations by mode, rule_id, severity
//   - bizgate_gate_tenant_violations_total: violations by tenant
//   - bizgate_gate_last_run_violations: error/warn counts of the latest run
//   - bizgate_gate_last_run_timestamp_seconds: start time of the latest run
type GateMetrics struct {
	runsTotal        *prometheus.CounterVec
	runDuration      *prometheus.HistogramVec
	recordsChecked   *prometheus.CounterVec
	violationsTotal  *prometheus.CounterVec
	tenantViolations *prometheus.CounterVec
	lastViolations   *prometheus.GaugeVec
	lastRunTime      *prometheus.GaugeVec
}

// NewGateMetrics creates and registers gate metrics with the provided registry.
func NewGateMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GateMetrics {
	gm := &GateMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of gate runs",
			},
			[]string{"mode", "result"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of gate runs in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"mode"},
		),

		recordsChecked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "records_checked_total",
				Help:      "Total number of dictionary records evaluated",
			},
			[]string{"mode"},
		),

		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "violations_total",
				Help:      "Total number of violations reported",
			},
			[]string{"mode", "rule_id", "severity"},
		),

		tenantViolations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tenant_violations_total",
				Help:      "Total number of violations reported per tenant",
			},
			[]string{"mode", "tenant_id"},
		),

		lastViolations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_violations",
				Help:      "Violations reported by the most recent run",
			},
			[]string{"mode", "severity"},
		),

		lastRunTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the most recent run started",
			},
			[]string{"mode"},
		),
	}

	registry.MustRegister(
		gm.runsTotal,
		gm.runDuration,
		gm.recordsChecked,
		gm.violationsTotal,
		gm.tenantViolations,
		gm.lastViolations,
		gm.lastRunTime,
	)

	return gm
}

// RecordRun records the outcome of one run.
func (gm *GateMetrics) RecordRun(mode, result string, duration time.Duration, records int) {
	gm.runsTotal.WithLabelValues(mode, result).Inc()
	gm.runDuration.WithLabelValues(mode).Observe(duration.Seconds())
	gm.recordsChecked.WithLabelValues(mode).Add(float64(records))
}

// RecordViolations adds n violations of one rule ID.
func (gm *GateMetrics) RecordViolations(mode, ruleID, severity string, n int) {
	gm.violationsTotal.WithLabelValues(mode, ruleID, severity).Add(float64(n))
}

// RecordTenantViolations adds n violations for one tenant.
func (gm *GateMetrics) RecordTenantViolations(mode, tenant string, n int) {
	gm.tenantViolations.WithLabelValues(mode, tenant).Add(float64(n))
}

// SetLastRun sets the gauges describing the latest run of mode.
func (gm *GateMetrics) SetLastRun(mode string, errs, warns int, started time.Time) {
	gm.lastViolations.WithLabelValues(mode, "error").Set(float64(errs))
	gm.lastViolations.WithLabelValues(mode, "warn").Set(float64(warns))
	gm.lastRunTime.WithLabelValues(mode).Set(float64(started.Unix()))
}
