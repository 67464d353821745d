package graph

import (
	"encoding/json"
	"fmt"
)

// rawPayload keeps the array fields opaque so a non-array value can be
// reported as ErrInvalidPayload instead of a bare json error, and so the
// legacy "relationships" key can stand in for "edges".
type rawPayload struct {
	Nodes         json.RawMessage `json:"nodes"`
	Edges         json.RawMessage `json:"edges"`
	Relationships json.RawMessage `json:"relationships"`
	Stats         *Stats          `json:"stats"`
}

// DecodePayload parses a query API response. Older API versions deliver
// the edge array under "relationships"; both keys are accepted and
// "edges" wins when both are present. Node labels are normalized through
// the display fallback chain (name, value, "Node {id}"), and edges
// without an ID get a synthesized one so downstream keying never sees
// an empty string.
//
// A response whose nodes or edges field is present but not an array is
// rejected with ErrInvalidPayload; callers should render an empty state
// rather than a partial graph.
func DecodePayload(data []byte) (*Payload, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewError("DecodePayload").Payload().Cause(fmt.Errorf("%w: %v", ErrInvalidPayload, err))
	}

	p := &Payload{Stats: raw.Stats}

	if err := decodeArray(raw.Nodes, "nodes", &p.Nodes); err != nil {
		return nil, err
	}

	edgeData := raw.Edges
	if edgeData == nil {
		edgeData = raw.Relationships
	}
	if err := decodeArray(edgeData, "edges", &p.Edges); err != nil {
		return nil, err
	}

	for i := range p.Nodes {
		p.Nodes[i].Label = displayLabel(p.Nodes[i])
	}
	for i := range p.Edges {
		if p.Edges[i].ID == "" {
			p.Edges[i].ID = fmt.Sprintf("%s-%s-%s", p.Edges[i].Source, p.Edges[i].Target, p.Edges[i].Type)
		}
	}

	if p.Stats == nil {
		p.Stats = ComputeStats(p.Nodes, p.Edges)
	}
	return p, nil
}

func decodeArray[T any](data json.RawMessage, field string, out *[]T) error {
	if data == nil || string(data) == "null" {
		*out = nil
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewError("DecodePayload").Payload().Context(field).Cause(fmt.Errorf("%w: %v", ErrInvalidPayload, err))
	}
	return nil
}

// displayLabel resolves the display name for a node: explicit label,
// then the name property, then value, then a generated placeholder.
func displayLabel(n Node) string {
	if n.Label != "" {
		return n.Label
	}
	if name, ok := PropString(n, "name"); ok && name != "" {
		return name
	}
	if value, ok := PropString(n, "value"); ok && value != "" {
		return value
	}
	return fmt.Sprintf("Node %s", n.ID)
}
