package viewmodel

import (
	"fmt"
	"strings"

	"github.com/dd0wney/tenantgraph/pkg/graph"
)

// tooltipFields lists the optional properties shown in a node tooltip,
// in display order. Absent or empty values are skipped entirely.
var tooltipFields = []struct {
	key   string
	title string
}{
	{"resourceGroup", "Resource Group"},
	{"location", "Location"},
	{"subscriptionId", "Subscription"},
	{"sku", "SKU"},
	{"status", "Status"},
	{"provisioningState", "Provisioning State"},
}

// buildTitle synthesizes tooltip markup for a node from whichever of
// the optional properties are present.
func buildTitle(n graph.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> (%s)", n.Label, n.Type)

	for _, f := range tooltipFields {
		v, ok := graph.PropString(n, f.key)
		if !ok || v == "" {
			continue
		}
		fmt.Fprintf(&b, "<br>%s: %s", f.title, v)
	}
	return b.String()
}
