package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSelectionMetrics() {
	r.SelectionOpsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantgraph_selection_ops_total",
			Help: "Selection toggles, by operation",
		},
		[]string{"op"},
	)

	r.SelectionSize = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "tenantgraph_selection_size",
			Help: "Current number of selected nodes",
		},
	)

	r.ExportsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "tenantgraph_exports_total",
			Help: "Completed selection exports",
		},
	)

	r.ExportedNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tenantgraph_exported_nodes",
			Help:    "Number of nodes per export",
			Buckets: []float64{1, 5, 10, 50, 100, 500},
		},
	)

	r.DetailFetchTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenantgraph_detail_fetch_total",
			Help: "Node detail fetches, by status",
		},
		[]string{"status"},
	)
}
