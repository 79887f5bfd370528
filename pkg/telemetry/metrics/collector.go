package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// namespace is the Prometheus namespace for all Minos metrics.
const namespace = "minos"

// Collector owns the Prometheus registry and all metric subsystems.
type Collector struct {
	registry *prometheus.Registry

	engineMetrics *EngineMetrics
	ledgerMetrics *LedgerMetrics
}

// NewCollector creates a new metrics collector backed by the given registry.
// If registry is nil, a fresh registry is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		registry:      registry,
		engineMetrics: NewEngineMetrics(registry),
		ledgerMetrics: NewLedgerMetrics(registry),
	}
}

// Engine returns the engine metric subsystem.
func (c *Collector) Engine() *EngineMetrics {
	return c.engineMetrics
}

// Ledger returns the ledger metric subsystem.
func (c *Collector) Ledger() *LedgerMetrics {
	return c.ledgerMetrics
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
