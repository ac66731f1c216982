// SPDX-License-Identifier: MIT
// Package metrics instruments the flag/index engine with Prometheus collectors.
//
// A Registry owns a private prometheus.Registry so several networks (or tests)
// never collide on global state. Every method is safe on a nil *Registry, which
// lets the network package call it unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels of lvlgrid_set_flags_total.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
)

// Registry holds every lvlgrid collector.
type Registry struct {
	SetFlagsTotal     *prometheus.CounterVec
	RecomputeTotal    prometheus.Counter
	RecomputeDuration prometheus.Histogram
	FlaggedQuantities *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all collectors initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initFlagMetrics()
	r.initRecomputeMetrics()

	return r
}

// Prometheus returns the underlying Prometheus registry (a Gatherer).
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initFlagMetrics() {
	r.SetFlagsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "lvlgrid_set_flags_total",
			Help: "Total number of flag mutations by object type and result",
		},
		[]string{"object", "result"},
	)

	r.FlaggedQuantities = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lvlgrid_flagged_quantities",
			Help: "Flagged quantity count after the last recompute, by flag set",
		},
		[]string{"set"},
	)
}

func (r *Registry) initRecomputeMetrics() {
	r.RecomputeTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "lvlgrid_recompute_total",
			Help: "Total number of index allocator passes",
		},
	)

	r.RecomputeDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lvlgrid_recompute_duration_seconds",
			Help:    "Index allocator pass duration in seconds",
			Buckets: []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1, 1},
		},
	)
}

// ObserveSetFlags counts one SetFlags/SetFlagsOf call.
func (r *Registry) ObserveSetFlags(object, result string) {
	if r == nil {
		return
	}
	r.SetFlagsTotal.WithLabelValues(object, result).Inc()
}

// ObserveRecompute records one allocator pass and the resulting counts.
func (r *Registry) ObserveRecompute(d time.Duration, vars, fixed, bounded, sparse int) {
	if r == nil {
		return
	}
	r.RecomputeTotal.Inc()
	r.RecomputeDuration.Observe(d.Seconds())
	r.FlaggedQuantities.WithLabelValues("vars").Set(float64(vars))
	r.FlaggedQuantities.WithLabelValues("fixed").Set(float64(fixed))
	r.FlaggedQuantities.WithLabelValues("bounded").Set(float64(bounded))
	r.FlaggedQuantities.WithLabelValues("sparse").Set(float64(sparse))
}
