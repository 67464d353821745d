package filter

import (
	"strings"

	"github.com/dd0wney/tenantgraph/pkg/graph"
)

// Matches reports whether a node passes every active facet. Facets are
// independent and ANDed; an empty attribute facet restricts nothing.
// A node with no properties simply fails any facet that would need
// them, it never causes an error.
func Matches(node graph.Node, s *State) bool {
	if !s.VisibleNodeTypes[node.Type] {
		return false
	}
	if !matchesName(node, s.NameFilter) {
		return false
	}
	if !matchesTags(node, s.SelectedTags) {
		return false
	}
	if !matchesRegion(node, s.SelectedRegions) {
		return false
	}
	if !matchesContainer(node, s.SelectedResourceGroups, "resourceGroup", graph.TypeResourceGroup) {
		return false
	}
	return matchesContainer(node, s.SelectedSubscriptions, "subscriptionId", graph.TypeSubscription)
}

// MatchesEdgeType reports whether an edge's own type is enabled. The
// endpoint-visibility half of edge filtering lives in the view-model
// builder, which knows the visible node set.
func MatchesEdgeType(edge graph.Edge, s *State) bool {
	return s.VisibleEdgeTypes[edge.Type]
}

// matchesName does a case-insensitive substring match against the
// label and the name/displayName properties. Any one hit suffices.
func matchesName(node graph.Node, nameFilter string) bool {
	needle := strings.ToLower(strings.TrimSpace(nameFilter))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(node.Label), needle) {
		return true
	}
	for _, key := range []string{"name", "displayName"} {
		if v, ok := graph.PropString(node, key); ok {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
	}
	return false
}

func matchesTags(node graph.Node, selected map[string]bool) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range graph.Tags(node) {
		if selected[tag] {
			return true
		}
	}
	return false
}

func matchesRegion(node graph.Node, selected map[string]bool) bool {
	if len(selected) == 0 {
		return true
	}
	for _, key := range []string{"location", "region"} {
		if v, ok := graph.PropString(node, key); ok && selected[v] {
			return true
		}
	}
	return false
}

// matchesContainer handles the resource-group and subscription facets.
// Besides the property lookup, a container node (type ResourceGroup or
// Subscription) matches when its own label is the selected identifier,
// so the container stays visible while filtering by what it holds.
func matchesContainer(node graph.Node, selected map[string]bool, propKey, containerType string) bool {
	if len(selected) == 0 {
		return true
	}
	if v, ok := graph.PropString(node, propKey); ok && selected[v] {
		return true
	}
	return node.Type == containerType && selected[node.Label]
}
