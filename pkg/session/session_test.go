package session

import (
	"context"
	"errors"
	"testing"

	"github.com/dd0wney/tenantgraph/pkg/graph"
	"github.com/dd0wney/tenantgraph/pkg/metrics"
)

// stubFetcher records detail fetches and serves canned results.
type stubFetcher struct {
	calls  []string
	detail *NodeDetail
	err    error
}

func (f *stubFetcher) FetchNodeDetail(_ context.Context, id string) (*NodeDetail, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func testPayload(t *testing.T) *graph.Payload {
	t.Helper()
	p, err := graph.DecodePayload([]byte(`{
		"nodes": [
			{"id": "n1", "label": "tenant", "type": "Tenant"},
			{"id": "n2", "label": "sub", "type": "Subscription"},
			{"id": "n3", "label": "rg", "type": "ResourceGroup"},
			{"id": "n4", "label": "vm-web", "type": "VirtualMachine"}
		],
		"edges": [
			{"id": "e1", "source": "n1", "target": "n2", "type": "CONTAINS"},
			{"id": "e2", "source": "n2", "target": "n3", "type": "CONTAINS"},
			{"id": "e3", "source": "n3", "target": "n4", "type": "CONTAINS"}
		]
	}`))
	if err != nil {
		t.Fatalf("Failed to decode test payload: %v", err)
	}
	return p
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append(opts, WithMetrics(metrics.NewRegistry()))
	s := New(opts...)
	if err := s.LoadPayload(testPayload(t)); err != nil {
		t.Fatalf("LoadPayload failed: %v", err)
	}
	return s
}

func TestLoadPayload_DefaultsAndRebuild(t *testing.T) {
	s := newTestSession(t)

	vm := s.ViewModel()
	if len(vm.Nodes) != 3 {
		t.Fatalf("Expected 3 visible nodes (Subscription hidden), got %d", len(vm.Nodes))
	}
	// e1 and e2 touch the hidden subscription node
	if len(vm.Edges) != 1 || vm.Edges[0].ID != "e3" {
		t.Errorf("Expected only e3 visible, got %+v", vm.Edges)
	}
	if s.Mode() != ModeNormal {
		t.Error("Fresh session should start in normal mode")
	}
}

func TestLoadPayload_InvalidPayload(t *testing.T) {
	s := New(WithMetrics(metrics.NewRegistry()))
	bad := &graph.Payload{Nodes: []graph.Node{{ID: "a"}, {ID: "a"}}}

	err := s.LoadPayload(bad)
	if !errors.Is(err, graph.ErrInvalidPayload) {
		t.Fatalf("Expected ErrInvalidPayload, got %v", err)
	}

	vm := s.ViewModel()
	if len(vm.Nodes) != 0 || len(vm.Edges) != 0 {
		t.Error("Rejected payload must leave an empty view model")
	}
}

func TestLoadPayload_RejectionResetsSession(t *testing.T) {
	s := newTestSession(t)
	s.SetMode(ModeSelecting)
	if _, err := s.HandleNodeClick(context.Background(), "n4"); err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if s.Selection().Len() == 0 {
		t.Fatal("Click in selecting mode should grow the selection")
	}

	bad := &graph.Payload{Nodes: []graph.Node{{ID: "a"}, {ID: "a"}}}
	if err := s.LoadPayload(bad); !errors.Is(err, graph.ErrInvalidPayload) {
		t.Fatalf("Expected ErrInvalidPayload, got %v", err)
	}

	if s.Mode() != ModeNormal {
		t.Error("Rejected payload must return the session to normal mode")
	}
	if s.Selection().Len() != 0 {
		t.Errorf("Rejected payload must clear the selection, got %v", s.Selection().IDs())
	}
	if _, err := s.Export(); !errors.Is(err, ErrNoPayload) {
		t.Errorf("Export after rejected load: expected ErrNoPayload, got %v", err)
	}
}

func TestLoadPayload_IgnoresSuppliedStatsForDefaults(t *testing.T) {
	// Supplied stats omit VirtualMachine; the type still gets a
	// visibility toggle because defaults come from the node array.
	p, err := graph.DecodePayload([]byte(`{
		"nodes": [
			{"id": "n1", "label": "rg", "type": "ResourceGroup"},
			{"id": "n2", "label": "vm-web", "type": "VirtualMachine"}
		],
		"edges": [
			{"id": "e1", "source": "n1", "target": "n2", "type": "CONTAINS"}
		],
		"stats": {"nodeTypes": {"ResourceGroup": 1}, "edgeTypes": {"CONTAINS": 1}}
	}`))
	if err != nil {
		t.Fatalf("Failed to decode test payload: %v", err)
	}

	s := New(WithMetrics(metrics.NewRegistry()))
	if err := s.LoadPayload(p); err != nil {
		t.Fatalf("LoadPayload failed: %v", err)
	}

	if !s.Filters().VisibleNodeTypes["VirtualMachine"] {
		t.Error("Type absent from supplied stats must still default to visible")
	}
	if got := len(s.ViewModel().Nodes); got != 2 {
		t.Errorf("Expected both nodes visible, got %d", got)
	}

	s.ToggleNodeType("VirtualMachine")
	if got := len(s.ViewModel().Nodes); got != 1 {
		t.Errorf("Uncounted type must still be togglable, got %d nodes", got)
	}
}

func TestFilterMutatorsRebuild(t *testing.T) {
	s := newTestSession(t)

	s.ToggleNodeType(graph.TypeSubscription)
	if len(s.ViewModel().Nodes) != 4 || len(s.ViewModel().Edges) != 3 {
		t.Error("Showing subscriptions should reveal the whole chain")
	}

	s.SetNameFilter("vm")
	if got := len(s.ViewModel().Nodes); got != 1 {
		t.Errorf("Name filter should leave only the VM, got %d", got)
	}

	s.ResetFilters()
	if len(s.ViewModel().Nodes) != 4 {
		t.Error("Reset should restore the unfiltered view")
	}
}

func TestModeTransitionsClearSelection(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	s.SetMode(ModeSelecting)
	if _, err := s.HandleNodeClick(ctx, "n4"); err != nil {
		t.Fatalf("Click failed: %v", err)
	}
	if s.Selection().Len() == 0 {
		t.Fatal("Click in selecting mode should grow the selection")
	}

	s.SetMode(ModeNormal)
	if s.Selection().Len() != 0 {
		t.Error("Leaving selecting mode must clear the selection")
	}

	s.SetMode(ModeSelecting)
	if s.Selection().Len() != 0 {
		t.Error("Entering selecting mode must start from an empty selection")
	}
}

func TestHandleNodeClick_NormalModeFetchesDetail(t *testing.T) {
	fetcher := &stubFetcher{detail: &NodeDetail{
		Node: graph.Node{ID: "n4", Label: "vm-web", Type: "VirtualMachine"},
		Neighbors: []NeighborRef{
			{Node: graph.Node{ID: "n3"}, EdgeType: "CONTAINS", Direction: "in"},
		},
	}}
	s := newTestSession(t, WithDetailFetcher(fetcher))

	res, err := s.HandleNodeClick(context.Background(), "n4")
	if err != nil {
		t.Fatalf("HandleNodeClick failed: %v", err)
	}
	if res.Detail == nil || res.Detail.Node.ID != "n4" {
		t.Errorf("Expected n4 detail, got %+v", res)
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != "n4" {
		t.Errorf("Fetcher calls = %v", fetcher.calls)
	}
	if s.Selection().Len() != 0 {
		t.Error("Normal-mode click must not mutate the selection")
	}
}

func TestHandleNodeClick_SelectingModeSkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("should not be called")}
	s := newTestSession(t, WithDetailFetcher(fetcher))
	s.SetMode(ModeSelecting)

	res, err := s.HandleNodeClick(context.Background(), "n3")
	if err != nil {
		t.Fatalf("HandleNodeClick failed: %v", err)
	}
	if len(fetcher.calls) != 0 {
		t.Error("Selecting-mode click must never trigger a detail fetch")
	}
	if !res.Selected {
		t.Error("Anchor should be selected after the click")
	}
	// n3's rendered neighborhood is {n3, n4}; the edge to the hidden
	// subscription n2 is not rendered, so n2 stays out.
	sel := s.Selection()
	if sel.Len() != 2 || !sel.Has("n3") || !sel.Has("n4") {
		t.Errorf("Selection = %v", sel.IDs())
	}
}

func TestHandleNodeClick_HiddenNodeNoop(t *testing.T) {
	s := newTestSession(t)
	s.SetMode(ModeSelecting)

	// n2 is a Subscription, hidden by default
	res, err := s.HandleNodeClick(context.Background(), "n2")
	if err != nil {
		t.Fatalf("HandleNodeClick failed: %v", err)
	}
	if res.Size != 0 || s.Selection().Len() != 0 {
		t.Errorf("Click on hidden node must be a no-op, got %v", s.Selection().IDs())
	}
}

func TestHandleNodeClick_NoPayload(t *testing.T) {
	s := New(WithMetrics(metrics.NewRegistry()))
	if _, err := s.HandleNodeClick(context.Background(), "n1"); !errors.Is(err, ErrNoPayload) {
		t.Errorf("Expected ErrNoPayload, got %v", err)
	}
}

func TestExport(t *testing.T) {
	s := newTestSession(t)
	s.SetMode(ModeSelecting)
	s.HandleNodeClick(context.Background(), "n4")

	event, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if event.EventID == "" {
		t.Error("Export event needs an ID")
	}
	if len(event.NodeIDs) != 2 { // n4 and its visible neighbor n3
		t.Errorf("NodeIDs = %v", event.NodeIDs)
	}
	if len(event.NodeDetails) != len(event.NodeIDs) {
		t.Error("Every exported ID needs resolved metadata")
	}
	for _, d := range event.NodeDetails {
		if d.ID == "" || d.Type == "" || d.Label == "" {
			t.Errorf("Incomplete node detail: %+v", d)
		}
	}

	if s.Mode() != ModeNormal {
		t.Error("Export must return the session to normal mode")
	}
	if s.Selection().Len() != 0 {
		t.Error("Export must clear the selection")
	}
}

func TestExport_EmptySelection(t *testing.T) {
	s := newTestSession(t)
	s.SetMode(ModeSelecting)

	if _, err := s.Export(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Expected ErrEmptySelection, got %v", err)
	}
	if s.Mode() != ModeSelecting {
		t.Error("Failed export must not change mode")
	}
}

func TestFocusSearch(t *testing.T) {
	s := newTestSession(t)

	ids := s.FocusSearch("vm")
	if len(ids) != 1 || ids[0] != "n4" {
		t.Errorf("FocusSearch(vm) = %v", ids)
	}

	// Hidden nodes are not focusable
	if ids := s.FocusSearch("sub"); len(ids) != 0 {
		t.Errorf("Hidden subscription should not be focusable, got %v", ids)
	}

	// Type match works too
	if ids := s.FocusSearch("resourcegroup"); len(ids) != 1 || ids[0] != "n3" {
		t.Errorf("FocusSearch by type = %v", ids)
	}

	if ids := s.FocusSearch("  "); ids != nil {
		t.Errorf("Blank query should return nothing, got %v", ids)
	}
}
