package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics tracks metrics related to the audit ledger.
//
// Metrics:
//   - minos_ledger_appends_total: Total records appended by event type
//   - minos_ledger_chain_length: Current number of records in the chain
//   - minos_ledger_verifications_total: Integrity verifications by result
//   - minos_ledger_verification_duration_seconds: Full chain verification duration
type LedgerMetrics struct {
	appendsTotal         *prometheus.CounterVec
	chainLength          prometheus.Gauge
	verificationsTotal   *prometheus.CounterVec
	verificationDuration prometheus.Histogram
}

// NewLedgerMetrics creates and registers ledger metrics with the provided registry.
func NewLedgerMetrics(registry *prometheus.Registry) *LedgerMetrics {
	lm := &LedgerMetrics{
		appendsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_appends_total",
				Help:      "Total number of audit records appended",
			},
			[]string{"event_type"},
		),

		chainLength: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ledger_chain_length",
				Help:      "Current number of records in the audit chain",
			},
		),

		verificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_verifications_total",
				Help:      "Total number of chain integrity verifications",
			},
			[]string{"result"},
		),

		verificationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ledger_verification_duration_seconds",
				Help:      "Duration of full chain verification in seconds",
				// Verification is linear in chain length
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
		),
	}

	registry.MustRegister(
		lm.appendsTotal,
		lm.chainLength,
		lm.verificationsTotal,
		lm.verificationDuration,
	)

	return lm
}

// RecordAppend records a successful ledger append.
func (lm *LedgerMetrics) RecordAppend(eventType string, chainLength int) {
	lm.appendsTotal.WithLabelValues(eventType).Inc()
	lm.chainLength.Set(float64(chainLength))
}

// RecordVerification records a completed chain verification.
// The result label is "valid" or "invalid".
func (lm *LedgerMetrics) RecordVerification(valid bool, duration time.Duration) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	lm.verificationsTotal.WithLabelValues(result).Inc()
	lm.verificationDuration.Observe(duration.Seconds())
}
