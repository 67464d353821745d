package viewmodel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeStyle is the presentation entry for one node type.
type NodeStyle struct {
	Color string `yaml:"color" json:"color"`
	Shape string `yaml:"shape" json:"shape"`
	Size  int    `yaml:"size" json:"size"`
}

// EdgeStyle is the presentation entry for one edge type.
type EdgeStyle struct {
	Color  string  `yaml:"color" json:"color"`
	Width  float64 `yaml:"width" json:"width"`
	Dashes bool    `yaml:"dashes" json:"dashes"`
	Arrows string  `yaml:"arrows" json:"arrows"`
}

// StyleTable maps node/edge types to presentation metadata. Unknown
// types resolve to the default entries, never an error.
type StyleTable struct {
	Nodes       map[string]NodeStyle `yaml:"nodes"`
	Edges       map[string]EdgeStyle `yaml:"edges"`
	DefaultNode NodeStyle            `yaml:"defaultNode"`
	DefaultEdge EdgeStyle            `yaml:"defaultEdge"`
}

// NodeStyleFor resolves the style for a node type.
func (t *StyleTable) NodeStyleFor(nodeType string) NodeStyle {
	if s, ok := t.Nodes[nodeType]; ok {
		return s
	}
	return t.DefaultNode
}

// EdgeStyleFor resolves the style for an edge type.
func (t *StyleTable) EdgeStyleFor(edgeType string) EdgeStyle {
	if s, ok := t.Edges[edgeType]; ok {
		return s
	}
	return t.DefaultEdge
}

// DefaultStyleTable returns the built-in Azure palette.
func DefaultStyleTable() *StyleTable {
	return &StyleTable{
		Nodes: map[string]NodeStyle{
			"Tenant":               {Color: "#2B88D8", Shape: "hexagon", Size: 30},
			"Subscription":         {Color: "#50B0F0", Shape: "box", Size: 25},
			"ResourceGroup":        {Color: "#77C4A8", Shape: "box", Size: 22},
			"VirtualMachine":       {Color: "#F2A654", Shape: "dot", Size: 18},
			"Disk":                 {Color: "#C49A6C", Shape: "dot", Size: 14},
			"NetworkInterface":     {Color: "#9B7EDE", Shape: "dot", Size: 14},
			"VirtualNetwork":       {Color: "#6C8EBF", Shape: "triangle", Size: 20},
			"Subnet":               {Color: "#8FA8D0", Shape: "triangle", Size: 16},
			"NetworkSecurityGroup": {Color: "#D0605E", Shape: "shield", Size: 16},
			"PublicIPAddress":      {Color: "#62B5A5", Shape: "dot", Size: 14},
			"StorageAccount":       {Color: "#E8C254", Shape: "database", Size: 18},
			"KeyVault":             {Color: "#7A5CA8", Shape: "diamond", Size: 16},
			"WebSite":              {Color: "#5CA8A0", Shape: "dot", Size: 16},
			"SQLServer":            {Color: "#B05C88", Shape: "database", Size: 18},
			"SQLDatabase":          {Color: "#C87CA0", Shape: "database", Size: 14},
		},
		Edges: map[string]EdgeStyle{
			"CONTAINS":     {Color: "#9AA5B1", Width: 1.5, Arrows: "to"},
			"CONNECTED_TO": {Color: "#6C8EBF", Width: 2},
			"USES":         {Color: "#77C4A8", Width: 1.5, Dashes: true, Arrows: "to"},
			"DEPENDS_ON":   {Color: "#F2A654", Width: 2, Dashes: true, Arrows: "to"},
			"MEMBER_OF":    {Color: "#9B7EDE", Width: 1.5, Arrows: "to"},
		},
		DefaultNode: NodeStyle{Color: "#B0B8C1", Shape: "dot", Size: 15},
		DefaultEdge: EdgeStyle{Color: "#C4CAD0", Width: 1},
	}
}

// LoadStyleTable reads a YAML style file and overlays it on the
// defaults, so a file only needs the entries it wants to change.
func LoadStyleTable(path string) (*StyleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style table: %w", err)
	}

	var overlay StyleTable
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse style table %s: %w", path, err)
	}

	table := DefaultStyleTable()
	for k, v := range overlay.Nodes {
		table.Nodes[k] = v
	}
	for k, v := range overlay.Edges {
		table.Edges[k] = v
	}
	if overlay.DefaultNode != (NodeStyle{}) {
		table.DefaultNode = overlay.DefaultNode
	}
	if overlay.DefaultEdge != (EdgeStyle{}) {
		table.DefaultEdge = overlay.DefaultEdge
	}
	return table, nil
}
