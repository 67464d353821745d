package viewmodel

import (
	"github.com/dd0wney/tenantgraph/pkg/filter"
	"github.com/dd0wney/tenantgraph/pkg/graph"
)

// Builder produces view models from raw payloads. It holds only the
// style table; Build itself is pure and safe to re-run on every filter
// change.
type Builder struct {
	styles *StyleTable
}

// NewBuilder creates a builder. A nil style table falls back to the
// built-in Azure palette.
func NewBuilder(styles *StyleTable) *Builder {
	if styles == nil {
		styles = DefaultStyleTable()
	}
	return &Builder{styles: styles}
}

// Build filters and decorates one payload. The central invariant: an
// edge is kept iff its own type is enabled AND both endpoints passed
// every node facet. Edges referencing IDs absent from the payload are
// dropped silently. Inputs are never mutated; output order follows
// input order, so identical inputs give structurally identical output.
func (b *Builder) Build(nodes []graph.Node, edges []graph.Edge, s *filter.State) *ViewModel {
	vm := &ViewModel{
		Nodes: make([]VisNode, 0, len(nodes)),
		Edges: make([]VisEdge, 0, len(edges)),
	}

	visible := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if !filter.Matches(n, s) {
			continue
		}
		visible[n.ID] = true
		vm.Nodes = append(vm.Nodes, b.decorateNode(n))
	}

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	for _, e := range edges {
		switch {
		case !known[e.Source] || !known[e.Target]:
			vm.Dropped.Dangling++
		case !filter.MatchesEdgeType(e, s):
			vm.Dropped.TypeHidden++
		case !visible[e.Source] || !visible[e.Target]:
			vm.Dropped.EndpointHidden++
		default:
			vm.Edges = append(vm.Edges, b.decorateEdge(e))
		}
	}

	return vm
}

// BuildPayload is the Build variant used straight after a fetch.
// A nil payload (e.g. the caller hit ErrInvalidPayload and wants an
// empty state) yields a view model with zero nodes and edges.
func (b *Builder) BuildPayload(p *graph.Payload, s *filter.State) *ViewModel {
	if p == nil {
		return &ViewModel{Nodes: []VisNode{}, Edges: []VisEdge{}}
	}
	return b.Build(p.Nodes, p.Edges, s)
}

func (b *Builder) decorateNode(n graph.Node) VisNode {
	style := b.styles.NodeStyleFor(n.Type)
	return VisNode{
		ID:    n.ID,
		Label: n.Label,
		Type:  n.Type,
		Color: style.Color,
		Shape: style.Shape,
		Size:  style.Size,
		Title: buildTitle(n),
	}
}

func (b *Builder) decorateEdge(e graph.Edge) VisEdge {
	style := b.styles.EdgeStyleFor(e.Type)
	return VisEdge{
		ID:     e.ID,
		From:   e.Source,
		To:     e.Target,
		Label:  e.Type,
		Type:   e.Type,
		Color:  style.Color,
		Width:  style.Width,
		Dashes: style.Dashes,
		Arrows: style.Arrows,
	}
}
