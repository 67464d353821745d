package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/tenantgraph/pkg/filter"
	"github.com/dd0wney/tenantgraph/pkg/graph"
	"github.com/dd0wney/tenantgraph/pkg/logging"
	"github.com/dd0wney/tenantgraph/pkg/metrics"
	"github.com/dd0wney/tenantgraph/pkg/selection"
	"github.com/dd0wney/tenantgraph/pkg/validation"
	"github.com/dd0wney/tenantgraph/pkg/viewmodel"
)

// Session is one interactive exploration of a tenant graph. It owns
// the filter and selection state and rebuilds the view model in full
// after every change; the payload itself is treated as immutable
// between fetches.
//
// Sessions are single-goroutine by design, mirroring the UI event loop
// that drives them.
type Session struct {
	payload *graph.Payload
	filters *filter.State
	sel     selection.Set
	mode    Mode

	builder *viewmodel.Builder
	fetcher DetailFetcher
	log     logging.Logger
	metrics *metrics.Registry

	vm *viewmodel.ViewModel
}

// Option configures a Session.
type Option func(*Session)

// WithStyles sets the style table used for decoration.
func WithStyles(t *viewmodel.StyleTable) Option {
	return func(s *Session) { s.builder = viewmodel.NewBuilder(t) }
}

// WithDetailFetcher sets the node detail collaborator.
func WithDetailFetcher(f DetailFetcher) Option {
	return func(s *Session) { s.fetcher = f }
}

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Session) { s.metrics = r }
}

// New creates an empty session in normal mode.
func New(opts ...Option) *Session {
	s := &Session{
		sel:     selection.NewSet(),
		filters: filter.NewState(nil),
		builder: viewmodel.NewBuilder(nil),
		log:     logging.NewNopLogger(),
		metrics: metrics.DefaultRegistry(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// LoadPayload installs a freshly fetched payload, resets the filters
// to their defaults for its stats, clears the selection, and rebuilds.
func (s *Session) LoadPayload(p *graph.Payload) error {
	if err := validation.ValidatePayload(p); err != nil {
		s.metrics.InvalidPayloads.Inc()
		s.log.Warn("rejected payload", logging.Error(err))
		// A rejected payload leaves the session fully empty: selection
		// and mode reset alongside the payload, so nothing that refers
		// to the old graph can fire against a nil one.
		s.payload = nil
		s.sel.Clear()
		s.mode = ModeNormal
		s.vm = s.builder.BuildPayload(nil, s.filters)
		return err
	}

	s.payload = p
	// Defaults are seeded from the arrays, not the supplied stats: a
	// type the API forgot to count still needs a visibility toggle.
	s.filters = filter.NewState(graph.ComputeStats(p.Nodes, p.Edges))
	s.sel.Clear()
	s.mode = ModeNormal
	s.metrics.SetPayloadSize(len(p.Nodes), len(p.Edges))
	s.log.Info("payload loaded",
		logging.Int("nodes", len(p.Nodes)),
		logging.Int("edges", len(p.Edges)))
	s.rebuild()
	return nil
}

// ViewModel returns the current render-ready view model. Before any
// payload is loaded it is empty, never nil.
func (s *Session) ViewModel() *viewmodel.ViewModel {
	if s.vm == nil {
		s.vm = s.builder.BuildPayload(s.payload, s.filters)
	}
	return s.vm
}

// Filters exposes the facet state for UI toggles. Callers must use
// the session mutators below so every change triggers a rebuild.
func (s *Session) Filters() *filter.State { return s.filters }

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode { return s.mode }

// Selection returns a copy of the selected node IDs.
func (s *Session) Selection() selection.Set { return s.sel.Clone() }

// SetMode switches interaction mode. Entering or leaving selecting
// mode clears the selection, so stale picks never leak into an export.
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	s.mode = m
	s.sel.Clear()
	s.metrics.RecordSelectionOp("clear", 0)
	s.log.Debug("mode changed", logging.Mode(m.String()))
}

// ClearSelection empties the selection without leaving selecting mode.
func (s *Session) ClearSelection() {
	s.sel.Clear()
	s.metrics.RecordSelectionOp("clear", 0)
}

// ToggleNodeType flips one node type facet and rebuilds.
func (s *Session) ToggleNodeType(nodeType string) {
	s.filters.ToggleNodeType(nodeType)
	s.rebuild()
}

// ToggleEdgeType flips one edge type facet and rebuilds.
func (s *Session) ToggleEdgeType(edgeType string) {
	s.filters.ToggleEdgeType(edgeType)
	s.rebuild()
}

// SetNameFilter replaces the free-text facet and rebuilds.
func (s *Session) SetNameFilter(text string) {
	s.filters.SetNameFilter(text)
	s.rebuild()
}

// ToggleTag flips one tag facet entry and rebuilds.
func (s *Session) ToggleTag(tag string) {
	s.filters.ToggleTag(tag)
	s.rebuild()
}

// ToggleRegion flips one region facet entry and rebuilds.
func (s *Session) ToggleRegion(region string) {
	s.filters.ToggleRegion(region)
	s.rebuild()
}

// ToggleResourceGroup flips one resource-group facet entry and rebuilds.
func (s *Session) ToggleResourceGroup(rg string) {
	s.filters.ToggleResourceGroup(rg)
	s.rebuild()
}

// ToggleSubscription flips one subscription facet entry and rebuilds.
func (s *Session) ToggleSubscription(sub string) {
	s.filters.ToggleSubscription(sub)
	s.rebuild()
}

// ResetFilters clears the attribute facets and rebuilds.
func (s *Session) ResetFilters() {
	s.filters.Reset()
	s.rebuild()
}

// HandleNodeClick dispatches a click according to the current mode.
// Normal mode fetches the node's detail through the collaborator, a
// read with no state mutation. Selecting mode toggles the clicked
// node's 1-hop neighborhood in the selection; clicks on nodes that are
// not currently visible are no-ops.
func (s *Session) HandleNodeClick(ctx context.Context, nodeID string) (*ClickResult, error) {
	if s.payload == nil {
		return nil, ErrNoPayload
	}

	if s.mode == ModeSelecting {
		visible := s.visibleIDs()
		wasSelected := s.sel.Has(nodeID)
		// Neighborhoods are computed over the rendered edge set, so a
		// toggle can never pull hidden or unknown nodes into the
		// selection.
		s.sel = selection.Toggle(nodeID, s.sel, s.visibleEdges(), visible)

		op := "add"
		if wasSelected {
			op = "remove"
		}
		if !visible[nodeID] {
			op = "noop"
		}
		s.metrics.RecordSelectionOp(op, s.sel.Len())
		s.log.Debug("selection toggled",
			logging.NodeID(nodeID),
			logging.Operation(op),
			logging.Count(s.sel.Len()))
		return &ClickResult{Selected: s.sel.Has(nodeID), Size: s.sel.Len()}, nil
	}

	if s.fetcher == nil {
		return nil, graph.NewError("HandleNodeClick").Node(nodeID).Cause(graph.ErrNodeNotFound)
	}
	detail, err := s.fetcher.FetchNodeDetail(ctx, nodeID)
	if err != nil {
		s.metrics.RecordDetailFetch("error")
		return nil, graph.NewError("FetchNodeDetail").Node(nodeID).Cause(err)
	}
	s.metrics.RecordDetailFetch("ok")
	return &ClickResult{Detail: detail}, nil
}

// FocusSearch selects every visible node whose label, name, or type
// matches the query, replacing the current selection. It shares the
// node-id space with the filter core but never touches the facets.
func (s *Session) FocusSearch(query string) []string {
	if s.payload == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	visible := s.visibleIDs()
	matched := selection.NewSet()
	for _, n := range s.payload.Nodes {
		if !visible[n.ID] {
			continue
		}
		if strings.Contains(strings.ToLower(n.Label), needle) ||
			strings.Contains(strings.ToLower(n.Type), needle) {
			matched.Add(n.ID)
			continue
		}
		if name, ok := graph.PropString(n, "name"); ok &&
			strings.Contains(strings.ToLower(name), needle) {
			matched.Add(n.ID)
		}
	}

	s.sel = matched
	s.metrics.RecordSelectionOp("search", s.sel.Len())
	return matched.IDs()
}

// Export hands the selection off as an export event and returns the
// session to normal mode with an empty selection. An empty selection
// is an error; nothing is exported and the mode does not change.
func (s *Session) Export() (*ExportEvent, error) {
	if s.payload == nil {
		return nil, ErrNoPayload
	}
	if s.sel.Len() == 0 {
		return nil, ErrEmptySelection
	}

	byID := make(map[string]graph.Node, len(s.payload.Nodes))
	for _, n := range s.payload.Nodes {
		byID[n.ID] = n
	}

	ids := s.sel.IDs()
	event := &ExportEvent{
		EventID:     uuid.New().String(),
		NodeIDs:     ids,
		NodeDetails: make([]ExportNode, 0, len(ids)),
	}
	req := &validation.ExportRequest{NodeIDs: ids}
	for _, id := range ids {
		n := byID[id]
		event.NodeDetails = append(event.NodeDetails, ExportNode{ID: id, Type: n.Type, Label: n.Label})
		req.NodeDetails = append(req.NodeDetails, validation.NodeDetail{ID: id, Type: n.Type, Label: n.Label})
	}
	if err := validation.ValidateExportRequest(req); err != nil {
		return nil, err
	}

	s.metrics.RecordExport(len(ids))
	s.log.Info("selection exported",
		logging.String("event_id", event.EventID),
		logging.Count(len(ids)))

	s.mode = ModeNormal
	s.sel.Clear()
	return event, nil
}

// rebuild recomputes the view model in full. Every filter mutation and
// payload swap funnels through here.
func (s *Session) rebuild() {
	start := time.Now()
	s.vm = s.builder.BuildPayload(s.payload, s.filters)
	elapsed := time.Since(start)

	s.metrics.RecordBuild("ok", elapsed, len(s.vm.Nodes), len(s.vm.Edges))
	s.metrics.RecordDroppedEdges(s.vm.Dropped.TypeHidden, s.vm.Dropped.EndpointHidden, s.vm.Dropped.Dangling)
	s.log.Debug("view model rebuilt",
		logging.Int("visible_nodes", len(s.vm.Nodes)),
		logging.Int("visible_edges", len(s.vm.Edges)),
		logging.Latency(elapsed))
}

// visibleEdges reconstructs the rendered edge list for neighborhood
// computation.
func (s *Session) visibleEdges() []graph.Edge {
	vm := s.ViewModel()
	edges := make([]graph.Edge, 0, len(vm.Edges))
	for _, e := range vm.Edges {
		edges = append(edges, graph.Edge{ID: e.ID, Source: e.From, Target: e.To, Type: e.Type})
	}
	return edges
}

func (s *Session) visibleIDs() map[string]bool {
	vm := s.ViewModel()
	visible := make(map[string]bool, len(vm.Nodes))
	for _, n := range vm.Nodes {
		visible[n.ID] = true
	}
	return visible
}
