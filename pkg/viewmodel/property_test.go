package viewmodel

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/tenantgraph/pkg/filter"
	"github.com/dd0wney/tenantgraph/pkg/graph"
)

var propTestTypes = []string{"Tenant", "Subscription", "ResourceGroup", "VirtualMachine", "StorageAccount", "VirtualNetwork"}
var propTestEdgeTypes = []string{"CONTAINS", "USES", "CONNECTED_TO"}

// randomGraph builds a reproducible graph from a seed. Roughly one in
// ten edges references a node ID outside the payload so the dangling
// path gets exercised too.
func randomGraph(seed int64, nodeCount, edgeCount int) ([]graph.Node, []graph.Edge) {
	r := rand.New(rand.NewSource(seed))

	nodes := make([]graph.Node, nodeCount)
	for i := range nodes {
		nodes[i] = graph.Node{
			ID:    fmt.Sprintf("n%d", i),
			Label: fmt.Sprintf("node-%d", i),
			Type:  propTestTypes[r.Intn(len(propTestTypes))],
		}
	}

	edges := make([]graph.Edge, 0, edgeCount)
	for i := 0; i < edgeCount && nodeCount > 0; i++ {
		src := fmt.Sprintf("n%d", r.Intn(nodeCount))
		tgt := fmt.Sprintf("n%d", r.Intn(nodeCount))
		if r.Intn(10) == 0 {
			tgt = fmt.Sprintf("ghost%d", i)
		}
		edges = append(edges, graph.Edge{
			ID:     fmt.Sprintf("e%d", i),
			Source: src,
			Target: tgt,
			Type:   propTestEdgeTypes[r.Intn(len(propTestEdgeTypes))],
		})
	}
	return nodes, edges
}

// randomState is deterministic in its seed: the RNG is consumed over
// sorted keys, never in map iteration order.
func randomState(seed int64, nodes []graph.Node, edges []graph.Edge) *filter.State {
	r := rand.New(rand.NewSource(seed))
	s := filter.NewState(graph.ComputeStats(nodes, edges))
	for _, nt := range sortedKeys(s.VisibleNodeTypes) {
		s.VisibleNodeTypes[nt] = r.Intn(4) != 0
	}
	for _, et := range sortedKeys(s.VisibleEdgeTypes) {
		s.VisibleEdgeTypes[et] = r.Intn(4) != 0
	}
	return s
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TestBuildInvariants verifies the properties every build must satisfy
// regardless of payload shape or filter state.
func TestBuildInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: every visible edge has both endpoints visible
	properties.Property("edge-node consistency", prop.ForAll(
		func(seed int64, nodeCount, edgeCount int) bool {
			nodes, edges := randomGraph(seed, nodeCount, edgeCount)
			s := randomState(seed+1, nodes, edges)

			vm := NewBuilder(nil).Build(nodes, edges, s)

			visible := make(map[string]bool, len(vm.Nodes))
			for _, n := range vm.Nodes {
				visible[n.ID] = true
			}
			for _, e := range vm.Edges {
				if !visible[e.From] || !visible[e.To] {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 40),
		gen.IntRange(0, 80),
	))

	// Property 2: identical inputs give structurally identical output
	properties.Property("build is idempotent", prop.ForAll(
		func(seed int64, nodeCount, edgeCount int) bool {
			nodes, edges := randomGraph(seed, nodeCount, edgeCount)
			s := randomState(seed+1, nodes, edges)
			b := NewBuilder(nil)

			first := b.Build(nodes, edges, s)
			second := b.Build(nodes, edges, s)
			return reflect.DeepEqual(first, second)
		},
		gen.Int64(),
		gen.IntRange(0, 40),
		gen.IntRange(0, 80),
	))

	// Property 3: narrowing any facet never grows the visible node set.
	// Each narrowed state is a clone of the same baseline with exactly
	// one facet tightened.
	properties.Property("filters are monotone", prop.ForAll(
		func(seed int64, nodeCount, edgeCount int, nameFilter string) bool {
			nodes, edges := randomGraph(seed, nodeCount, edgeCount)
			base := randomState(seed+1, nodes, edges)
			b := NewBuilder(nil)

			before := len(b.Build(nodes, edges, base).Nodes)

			// Narrow by hiding one type
			hidden := base.Clone()
			hidden.VisibleNodeTypes[propTestTypes[int(seed)&1]] = false
			if len(b.Build(nodes, edges, hidden).Nodes) > before {
				return false
			}

			// Narrow by adding a name constraint
			named := base.Clone()
			named.SetNameFilter(nameFilter + "-narrow")
			if len(b.Build(nodes, edges, named).Nodes) > before {
				return false
			}

			// Narrow by adding a region constraint
			regioned := base.Clone()
			regioned.SelectedRegions["nowhere"] = true
			return len(b.Build(nodes, edges, regioned).Nodes) <= before
		},
		gen.Int64(),
		gen.IntRange(0, 40),
		gen.IntRange(0, 80),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
