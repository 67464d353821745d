package selection

import "github.com/dd0wney/tenantgraph/pkg/graph"

// Neighbors returns the closed 1-hop neighborhood of a node: the node
// itself plus every node one edge away, regardless of edge direction.
// With no incident edges the result is just {nodeID}.
func Neighbors(nodeID string, edges []graph.Edge) Set {
	hood := NewSet(nodeID)
	for _, e := range edges {
		switch nodeID {
		case e.Source:
			hood.Add(e.Target)
		case e.Target:
			hood.Add(e.Source)
		}
	}
	return hood
}

// Toggle flips the selection state of an entire 1-hop neighborhood in
// one click. An already-selected anchor deselects its whole
// neighborhood; an unselected anchor selects it. When neighborhoods
// overlap, grow and shrink are deliberately not exact inverses: a
// shrink can take out nodes that an earlier overlapping grow brought
// in. The visible set gates the anchor only — clicking an ID that is
// not currently visible is a no-op.
//
// The input selection is never mutated; callers get a fresh set.
func Toggle(nodeID string, current Set, edges []graph.Edge, visible map[string]bool) Set {
	if visible != nil && !visible[nodeID] {
		return current.Clone()
	}

	hood := Neighbors(nodeID, edges)
	next := current.Clone()

	if current.Has(nodeID) {
		for id := range hood {
			next.Remove(id)
		}
	} else {
		for id := range hood {
			next.Add(id)
		}
	}
	return next
}
