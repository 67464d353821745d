package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/tenantgraph/pkg/graph"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxTypeLength  = 64
	MaxLabelLength = 256
	MaxProperties  = 200
)

func init() {
	validate = validator.New()
}

// ExportRequest represents a selection export handed to a downstream collaborator
type ExportRequest struct {
	NodeIDs     []string     `json:"nodeIds" validate:"required,min=1,dive,required"`
	NodeDetails []NodeDetail `json:"nodeDetails" validate:"required,dive"`
}

// NodeDetail is the resolved metadata carried per exported node
type NodeDetail struct {
	ID    string `json:"id" validate:"required"`
	Type  string `json:"type" validate:"max=64"`
	Label string `json:"label" validate:"max=256"`
}

// ValidateExportRequest validates an export payload before it leaves the engine
func ValidateExportRequest(req *ExportRequest) error {
	if req == nil {
		return errors.New("export request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if len(req.NodeDetails) != len(req.NodeIDs) {
		return fmt.Errorf("NodeDetails: expected %d entries, got %d", len(req.NodeIDs), len(req.NodeDetails))
	}
	return nil
}

// ValidatePayload checks structural rules the decoder cannot express:
// node IDs must be present and unique, edges must name both endpoints.
// Dangling endpoint references are not an error here; the builder drops
// those edges silently.
func ValidatePayload(p *graph.Payload) error {
	if p == nil {
		return fmt.Errorf("%w: nil payload", graph.ErrInvalidPayload)
	}

	seen := make(map[string]bool, len(p.Nodes))
	for i, n := range p.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node at index %d has no id", graph.ErrInvalidPayload, i)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate node id %q", graph.ErrInvalidPayload, n.ID)
		}
		seen[n.ID] = true
		if len(n.Type) > MaxTypeLength {
			return fmt.Errorf("%w: node %q type exceeds %d characters", graph.ErrInvalidPayload, n.ID, MaxTypeLength)
		}
		if len(n.Properties) > MaxProperties {
			return fmt.Errorf("%w: node %q carries more than %d properties", graph.ErrInvalidPayload, n.ID, MaxProperties)
		}
	}

	for i, e := range p.Edges {
		if e.Source == "" || e.Target == "" {
			return fmt.Errorf("%w: edge at index %d is missing an endpoint", graph.ErrInvalidPayload, i)
		}
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: is required", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: needs at least %s entries", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: exceeds maximum of %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
