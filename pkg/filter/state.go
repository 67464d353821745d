// Package filter holds the facet state for the tenant graph explorer and
// the predicates that decide node/edge visibility. All facets compose
// conjunctively: a node must pass every active facet to stay visible.
package filter

import "github.com/dd0wney/tenantgraph/pkg/graph"

// State captures every active facet. Type sets gate visibility
// explicitly; the attribute facets (name, tags, regions, groups,
// subscriptions) are unrestricted while empty.
type State struct {
	VisibleNodeTypes map[string]bool
	VisibleEdgeTypes map[string]bool

	NameFilter string

	SelectedTags           map[string]bool
	SelectedRegions        map[string]bool
	SelectedResourceGroups map[string]bool
	SelectedSubscriptions  map[string]bool
}

// NewState builds the default facet state for a payload: every node
// type visible except Subscription (dense tenant hierarchies drown in
// subscription containers otherwise), every edge type visible, no
// attribute restrictions.
func NewState(stats *graph.Stats) *State {
	s := &State{
		VisibleNodeTypes:       make(map[string]bool),
		VisibleEdgeTypes:       make(map[string]bool),
		SelectedTags:           make(map[string]bool),
		SelectedRegions:        make(map[string]bool),
		SelectedResourceGroups: make(map[string]bool),
		SelectedSubscriptions:  make(map[string]bool),
	}
	if stats == nil {
		return s
	}
	for nodeType := range stats.NodeTypes {
		s.VisibleNodeTypes[nodeType] = nodeType != graph.TypeSubscription
	}
	for edgeType := range stats.EdgeTypes {
		s.VisibleEdgeTypes[edgeType] = true
	}
	return s
}

// Clone returns an independent copy of the facet state.
func (s *State) Clone() *State {
	return &State{
		VisibleNodeTypes:       cloneFacet(s.VisibleNodeTypes),
		VisibleEdgeTypes:       cloneFacet(s.VisibleEdgeTypes),
		NameFilter:             s.NameFilter,
		SelectedTags:           cloneFacet(s.SelectedTags),
		SelectedRegions:        cloneFacet(s.SelectedRegions),
		SelectedResourceGroups: cloneFacet(s.SelectedResourceGroups),
		SelectedSubscriptions:  cloneFacet(s.SelectedSubscriptions),
	}
}

// ToggleNodeType flips visibility for one node type.
func (s *State) ToggleNodeType(nodeType string) {
	s.VisibleNodeTypes[nodeType] = !s.VisibleNodeTypes[nodeType]
}

// ToggleEdgeType flips visibility for one edge type.
func (s *State) ToggleEdgeType(edgeType string) {
	s.VisibleEdgeTypes[edgeType] = !s.VisibleEdgeTypes[edgeType]
}

// SetNameFilter replaces the free-text name facet.
func (s *State) SetNameFilter(text string) {
	s.NameFilter = text
}

// ToggleTag flips membership of one tag in the tag facet.
func (s *State) ToggleTag(tag string) {
	toggleFacet(s.SelectedTags, tag)
}

// ToggleRegion flips membership of one region in the region facet.
func (s *State) ToggleRegion(region string) {
	toggleFacet(s.SelectedRegions, region)
}

// ToggleResourceGroup flips membership of one resource group.
func (s *State) ToggleResourceGroup(rg string) {
	toggleFacet(s.SelectedResourceGroups, rg)
}

// ToggleSubscription flips membership of one subscription.
func (s *State) ToggleSubscription(sub string) {
	toggleFacet(s.SelectedSubscriptions, sub)
}

// Reset clears every attribute facet, leaving type visibility untouched.
func (s *State) Reset() {
	s.NameFilter = ""
	s.SelectedTags = make(map[string]bool)
	s.SelectedRegions = make(map[string]bool)
	s.SelectedResourceGroups = make(map[string]bool)
	s.SelectedSubscriptions = make(map[string]bool)
}

func cloneFacet(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k, v := range set {
		out[k] = v
	}
	return out
}

func toggleFacet(set map[string]bool, key string) {
	if set[key] {
		delete(set, key)
	} else {
		set[key] = true
	}
}
