package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBuildMetrics() {
	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantgraph_builds_total",
			Help: "Total number of view-model builds",
		},
		[]string{"status"},
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tenantgraph_build_duration_seconds",
			Help:    "View-model build duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.BuildVisibleNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tenantgraph_build_visible_nodes",
			Help:    "Number of nodes visible after filtering",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
	)

	r.BuildVisibleEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tenantgraph_build_visible_edges",
			Help:    "Number of edges visible after filtering",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
	)

	r.BuildDroppedEdges = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantgraph_build_dropped_edges_total",
			Help: "Edges excluded from the view model, by reason",
		},
		[]string{"reason"},
	)

	r.PayloadNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "tenantgraph_payload_nodes",
			Help: "Raw node count of the current payload",
		},
	)

	r.PayloadEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "tenantgraph_payload_edges",
			Help: "Raw edge count of the current payload",
		},
	)

	r.InvalidPayloads = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "tenantgraph_invalid_payloads_total",
			Help: "Payloads rejected as structurally invalid",
		},
	)
}
