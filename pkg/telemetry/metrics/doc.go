// Package metrics provides Prometheus metrics collection for Minos.
//
// Metrics cover the two hot paths of the system:
//
//   - Engine metrics: statute evaluation counts by outcome, evaluation
//     duration, and registry size
//   - Ledger metrics: audit record appends, chain length, and integrity
//     verification results
//
// All metrics use the "minos" namespace and are exposed through the
// standard promhttp handler:
//
//	collector := metrics.NewCollector(registry)
//	http.Handle("/metrics", collector.Handler())
package metrics
