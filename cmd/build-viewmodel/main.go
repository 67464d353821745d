// build-viewmodel reads a graph payload as JSON, applies filter facets
// given on the command line, and writes the render-ready view model to
// stdout. It exists so rendering collaborators can be fed without the
// interactive explorer.
//
// Usage:
//
//	build-viewmodel -input tenant.json -name vm -regions eastus,westeu
//	cat tenant.json | build-viewmodel -show-subscriptions
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dd0wney/tenantgraph/pkg/filter"
	"github.com/dd0wney/tenantgraph/pkg/graph"
	"github.com/dd0wney/tenantgraph/pkg/logging"
	"github.com/dd0wney/tenantgraph/pkg/validation"
	"github.com/dd0wney/tenantgraph/pkg/viewmodel"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "Payload JSON file (default: stdin)")
		stylesPath = flag.String("styles", "", "Style table YAML overlay")
		showSubs   = flag.Bool("show-subscriptions", false, "Show Subscription nodes (hidden by default)")
		hideTypes  = flag.String("hide-types", "", "Comma-separated node types to hide")
		hideEdges  = flag.String("hide-edge-types", "", "Comma-separated edge types to hide")
		nameFilter = flag.String("name", "", "Case-insensitive name substring filter")
		regions    = flag.String("regions", "", "Comma-separated region facet")
		tags       = flag.String("tags", "", "Comma-separated tag facet")
		groups     = flag.String("resource-groups", "", "Comma-separated resource-group facet")
		subs       = flag.String("subscriptions", "", "Comma-separated subscription facet")
		pretty     = flag.Bool("pretty", false, "Indent the output JSON")
	)
	flag.Parse()

	log := logging.NewDefaultLogger()

	data, err := readInput(*inputPath)
	if err != nil {
		log.Error("failed to read input", logging.Error(err))
		os.Exit(1)
	}

	payload, err := graph.DecodePayload(data)
	if err == nil {
		err = validation.ValidatePayload(payload)
	}
	if err != nil {
		// Invalid payloads still produce a well-formed empty view model
		// so downstream renderers can show an empty state.
		log.Warn("invalid payload, emitting empty view model", logging.Error(err))
		writeOutput(&viewmodel.ViewModel{Nodes: []viewmodel.VisNode{}, Edges: []viewmodel.VisEdge{}}, *pretty)
		os.Exit(2)
	}

	styles := viewmodel.DefaultStyleTable()
	if *stylesPath != "" {
		styles, err = viewmodel.LoadStyleTable(*stylesPath)
		if err != nil {
			log.Error("failed to load style table", logging.Error(err))
			os.Exit(1)
		}
	}

	state := filter.NewState(graph.ComputeStats(payload.Nodes, payload.Edges))
	if *showSubs {
		state.VisibleNodeTypes[graph.TypeSubscription] = true
	}
	for _, t := range splitList(*hideTypes) {
		state.VisibleNodeTypes[t] = false
	}
	for _, t := range splitList(*hideEdges) {
		state.VisibleEdgeTypes[t] = false
	}
	state.SetNameFilter(*nameFilter)
	for _, r := range splitList(*regions) {
		state.SelectedRegions[r] = true
	}
	for _, tg := range splitList(*tags) {
		state.SelectedTags[tg] = true
	}
	for _, g := range splitList(*groups) {
		state.SelectedResourceGroups[g] = true
	}
	for _, s := range splitList(*subs) {
		state.SelectedSubscriptions[s] = true
	}

	vm := viewmodel.NewBuilder(styles).BuildPayload(payload, state)
	log.Info("view model built",
		logging.Int("visible_nodes", len(vm.Nodes)),
		logging.Int("visible_edges", len(vm.Edges)),
		logging.Int("dropped_dangling", vm.Dropped.Dangling))

	writeOutput(vm, *pretty)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(vm *viewmodel.ViewModel, pretty bool) {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(vm); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode view model: %v\n", err)
		os.Exit(1)
	}
}

func splitList(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
