package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the explorer engine
type Registry struct {
	// Build Metrics
	BuildsTotal        *prometheus.CounterVec
	BuildDuration      prometheus.Histogram
	BuildVisibleNodes  prometheus.Histogram
	BuildVisibleEdges  prometheus.Histogram
	BuildDroppedEdges  *prometheus.CounterVec
	PayloadNodesTotal  prometheus.Gauge
	PayloadEdgesTotal  prometheus.Gauge
	InvalidPayloads    prometheus.Counter

	// Selection Metrics
	SelectionOpsTotal *prometheus.CounterVec
	SelectionSize     prometheus.Gauge
	ExportsTotal      prometheus.Counter
	ExportedNodes     prometheus.Histogram
	DetailFetchTotal  *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initBuildMetrics()
	r.initSelectionMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared process-wide registry
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
