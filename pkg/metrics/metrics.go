package metrics

import (
	"time"
)

// RecordBuild records one view-model build with its duration and result sizes
func (r *Registry) RecordBuild(status string, duration time.Duration, visibleNodes, visibleEdges int) {
	r.BuildsTotal.WithLabelValues(status).Inc()
	r.BuildDuration.Observe(duration.Seconds())
	r.BuildVisibleNodes.Observe(float64(visibleNodes))
	r.BuildVisibleEdges.Observe(float64(visibleEdges))
}

// RecordDroppedEdges records edges excluded from a build, by reason
func (r *Registry) RecordDroppedEdges(typeHidden, endpointHidden, dangling int) {
	if typeHidden > 0 {
		r.BuildDroppedEdges.WithLabelValues("type_hidden").Add(float64(typeHidden))
	}
	if endpointHidden > 0 {
		r.BuildDroppedEdges.WithLabelValues("endpoint_hidden").Add(float64(endpointHidden))
	}
	if dangling > 0 {
		r.BuildDroppedEdges.WithLabelValues("dangling").Add(float64(dangling))
	}
}

// SetPayloadSize records the raw size of the current payload
func (r *Registry) SetPayloadSize(nodes, edges int) {
	r.PayloadNodesTotal.Set(float64(nodes))
	r.PayloadEdgesTotal.Set(float64(edges))
}

// RecordSelectionOp records one selection operation and the resulting size
func (r *Registry) RecordSelectionOp(op string, size int) {
	r.SelectionOpsTotal.WithLabelValues(op).Inc()
	r.SelectionSize.Set(float64(size))
}

// RecordExport records a completed export
func (r *Registry) RecordExport(nodeCount int) {
	r.ExportsTotal.Inc()
	r.ExportedNodes.Observe(float64(nodeCount))
}

// RecordDetailFetch records a node detail fetch
func (r *Registry) RecordDetailFetch(status string) {
	r.DetailFetchTotal.WithLabelValues(status).Inc()
}
