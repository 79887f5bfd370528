package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics tracks metrics related to statute evaluation.
//
// Metrics:
//   - minos_engine_evaluations_total: Total evaluations by statute and outcome
//   - minos_engine_evaluation_duration_seconds: Evaluation duration
//   - minos_engine_registry_statutes: Number of statutes in the registry
type EngineMetrics struct {
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	registryStatutes   prometheus.Gauge
}

// NewEngineMetrics creates and registers engine metrics with the provided registry.
func NewEngineMetrics(registry *prometheus.Registry) *EngineMetrics {
	em := &EngineMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_evaluations_total",
				Help:      "Total number of statute evaluations",
			},
			[]string{"statute_id", "outcome"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "engine_evaluation_duration_seconds",
				Help:      "Duration of statute evaluation in seconds",
				// Evaluations walk small condition trees and should be fast
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"statute_id"},
		),

		registryStatutes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "engine_registry_statutes",
				Help:      "Number of statutes currently in the registry",
			},
		),
	}

	registry.MustRegister(
		em.evaluationsTotal,
		em.evaluationDuration,
		em.registryStatutes,
	)

	return em
}

// RecordEvaluation records a completed statute evaluation.
// The outcome label is the decision kind ("deterministic",
// "requires_discretion", "evaluation_error") or "error" for
// evaluation failures.
func (em *EngineMetrics) RecordEvaluation(statuteID, outcome string, duration time.Duration) {
	em.evaluationsTotal.WithLabelValues(statuteID, outcome).Inc()
	em.evaluationDuration.WithLabelValues(statuteID).Observe(duration.Seconds())
}

// SetRegistrySize updates the registry size gauge.
func (em *EngineMetrics) SetRegistrySize(n int) {
	em.registryStatutes.Set(float64(n))
}
