// Package viewmodel turns a raw graph payload plus filter state into
// the render-ready node/edge arrays the rendering collaborator expects.
package viewmodel

// VisNode is one render-ready node. Field names follow the renderer's
// input contract (vis-network style).
type VisNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Shape string `json:"shape"`
	Size  int    `json:"size"`
	Title string `json:"title,omitempty"`
}

// VisEdge is one render-ready edge.
type VisEdge struct {
	ID     string  `json:"id"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Label  string  `json:"label,omitempty"`
	Type   string  `json:"type"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Dashes bool    `json:"dashes"`
	Arrows string  `json:"arrows,omitempty"`
}

// DropStats counts edges that were excluded and why. Purely derived,
// used for logging and metrics.
type DropStats struct {
	TypeHidden     int // edge type toggled off
	EndpointHidden int // an endpoint failed a node facet
	Dangling       int // an endpoint ID missing from the payload
}

// ViewModel is the filtered, decorated output of one Build call.
type ViewModel struct {
	Nodes   []VisNode `json:"nodes"`
	Edges   []VisEdge `json:"edges"`
	Dropped DropStats `json:"-"`
}
