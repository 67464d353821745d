// Package session implements the interactive explorer state machine:
// which mode a click lands in, which filters are active, and when the
// cumulative selection is handed off for export.
package session

import (
	"context"
	"errors"

	"github.com/dd0wney/tenantgraph/pkg/graph"
)

// Mode governs what a node click does.
type Mode int

const (
	// ModeNormal: clicking a node fetches and shows its detail view.
	ModeNormal Mode = iota
	// ModeSelecting: clicking a node toggles its 1-hop neighborhood
	// in the export selection. No detail fetch happens.
	ModeSelecting
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

var (
	ErrEmptySelection = errors.New("selection is empty")
	ErrNoPayload      = errors.New("no payload loaded")
)

// NeighborRef is one entry in a node's neighbor list, with the
// relationship direction seen from the detailed node.
type NeighborRef struct {
	Node      graph.Node `json:"node"`
	EdgeType  string     `json:"edgeType"`
	Direction string     `json:"direction"` // "in" or "out"
}

// NodeDetail is the full view of a single node: every property plus
// its neighbor list.
type NodeDetail struct {
	Node      graph.Node    `json:"node"`
	Neighbors []NeighborRef `json:"neighbors"`
}

// DetailFetcher is the collaborator that resolves a node's full detail
// on demand, typically backed by the graph query API.
type DetailFetcher interface {
	FetchNodeDetail(ctx context.Context, id string) (*NodeDetail, error)
}

// ExportNode is the per-node metadata carried in an export event.
type ExportNode struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// ExportEvent is the payload handed to the export collaborator when a
// selection leaves the explorer.
type ExportEvent struct {
	EventID     string       `json:"eventId"`
	NodeIDs     []string     `json:"nodeIds"`
	NodeDetails []ExportNode `json:"nodeDetails"`
}

// ClickResult reports what a node click did.
type ClickResult struct {
	Detail   *NodeDetail // set in normal mode
	Selected bool        // selecting mode: anchor now selected
	Size     int         // selecting mode: selection size after the click
}
