package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"finsem-hq/bizgate/pkg/bizmeta/resolver"
	"finsem-hq/bizgate/pkg/config"
)

// ResolverMetrics tracks the typeref memo.
//
// Metrics:
//   - bizgate_gate_typeref_cache_lookups_total: memo lookups by result (hit, miss)
//   - bizgate_gate_typeref_cache_entries: memo size at the end of the latest run
type ResolverMetrics struct {
	lookupsTotal *prometheus.CounterVec
	entries      prometheus.Gauge
}

// NewResolverMetrics creates and registers resolver metrics with the provided registry.
func NewResolverMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ResolverMetrics {
	rm := &ResolverMetrics{
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "typeref_cache_lookups_total",
				Help:      "Total number of typeref memo lookups",
			},
			[]string{"result"},
		),

		entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "typeref_cache_entries",
				Help:      "Resolved codes held by the typeref memo after the latest run",
			},
		),
	}

	registry.MustRegister(rm.lookupsTotal, rm.entries)

	return rm
}

// Record adds the memo counters of one run.
func (rm *ResolverMetrics) Record(stats resolver.Stats) {
	rm.lookupsTotal.WithLabelValues("hit").Add(float64(stats.Hits))
	rm.lookupsTotal.WithLabelValues("miss").Add(float64(stats.Misses))
	rm.entries.Set(float64(stats.Entries))
}
