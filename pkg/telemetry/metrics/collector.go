package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"finsem-hq/bizgate/pkg/bizmeta/rules"
	"finsem-hq/bizgate/pkg/config"
)

// otherLabel replaces label values beyond the cardinality limit.
const otherLabel = "other"

// DefaultMaxTenants bounds the tenant_id label.
const DefaultMaxTenants = 1000

// Collector owns the gate metrics and the registry they live in.
// All Record methods are no-ops when metrics are disabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	gateMetrics     *GateMetrics
	resolverMetrics *ResolverMetrics
	loaderMetrics   *LoaderMetrics

	tenantLimiter *CardinalityLimiter
}

// NewCollector creates a collector for cfg. If registry is nil a fresh
// registry is created, so collectors never share global state.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "bizgate", Subsystem: "gate"}
//	collector := metrics.NewCollector(cfg, nil)
//	collector.RecordRun(report, true)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		gateMetrics:     NewGateMetrics(cfg, registry),
		resolverMetrics: NewResolverMetrics(cfg, registry),
		loaderMetrics:   NewLoaderMetrics(cfg, registry),
		tenantLimiter:   NewCardinalityLimiter(DefaultMaxTenants),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordRun records a finished gate run: its outcome, duration, row count,
// per-rule violation counts and resolver memo usage.
func (c *Collector) RecordRun(report *rules.Report, passed bool) {
	if !c.config.Enabled || report == nil {
		return
	}

	mode := string(report.Mode)
	result := "passed"
	if !passed {
		result = "failed"
	}

	c.gateMetrics.RecordRun(mode, result, time.Duration(report.DurationMS)*time.Millisecond, report.RowCount)
	c.gateMetrics.SetLastRun(mode, report.ErrorCount, report.WarnCount, report.StartedAt)

	for _, rc := range report.CountByRule() {
		c.gateMetrics.RecordViolations(mode, string(rc.RuleID), string(rc.Severity), rc.Count)
	}

	tenants := make(map[string]int)
	for _, v := range report.Violations {
		tenants[v.TenantID]++
	}
	for tenant, n := range tenants {
		if !c.tenantLimiter.Allow(tenant) {
			tenant = otherLabel
		}
		c.gateMetrics.RecordTenantViolations(mode, tenant, n)
	}

	c.resolverMetrics.Record(report.ResolverStats)
}

// RecordLoad records one source read by the loader.
//
// Parameters:
//   - kind: source kind ("csv", "markdown", "sql")
//   - records: number of records produced
//   - skipped: number of rows skipped as malformed
//   - duration: time spent reading the source
func (c *Collector) RecordLoad(kind string, records, skipped int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.loaderMetrics.Record(kind, records, skipped, duration)
}

// RecordLoadError records a source that could not be read.
func (c *Collector) RecordLoadError(kind string) {
	if !c.config.Enabled {
		return
	}

	c.loaderMetrics.RecordError(kind)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter caps the number of distinct values admitted for a
// label. Values seen before the cap is reached stay admitted.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter admitting at most maxCardinality
// distinct values.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether value may be used as a label value, admitting it
// if there is room.
func (cl *CardinalityLimiter) Allow(value string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[value]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[value]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[value] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
