package graph

// Well-known node types that get special treatment in filtering.
// Container nodes (resource groups, subscriptions) stay visible when
// the user filters by the group they represent.
const (
	TypeTenant        = "Tenant"
	TypeSubscription  = "Subscription"
	TypeResourceGroup = "ResourceGroup"
)

// Node is a single resource in the tenant graph as delivered by the
// query API. IDs are unique and stable for the lifetime of a session.
type Node struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Edge is a directed relationship between two nodes. Source and Target
// reference node IDs in the same payload; edges pointing at unknown IDs
// are dropped by the view-model builder, never rendered.
type Edge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Stats holds aggregate counts derived from the node/edge arrays.
// It only feeds filter-toggle UI; the arrays stay authoritative.
type Stats struct {
	NodeCount int            `json:"nodeCount"`
	EdgeCount int            `json:"edgeCount"`
	NodeTypes map[string]int `json:"nodeTypes"`
	EdgeTypes map[string]int `json:"edgeTypes"`
}

// Payload is one complete fetch result from the graph query API.
type Payload struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Stats *Stats `json:"stats,omitempty"`
}

// ComputeStats derives aggregate counts from the payload arrays.
func ComputeStats(nodes []Node, edges []Edge) *Stats {
	s := &Stats{
		NodeCount: len(nodes),
		EdgeCount: len(edges),
		NodeTypes: make(map[string]int),
		EdgeTypes: make(map[string]int),
	}
	for _, n := range nodes {
		s.NodeTypes[n.Type]++
	}
	for _, e := range edges {
		s.EdgeTypes[e.Type]++
	}
	return s
}
