package network

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestBuildNetwork_Star builds the BioGRID demo network around BRCA1
func TestBuildNetwork_Star(t *testing.T) {
	g, err := BuildNetwork(EdgesFromPairs([][2]string{
		{"BRCA1", "TP53"},
		{"BRCA1", "EGFR"},
		{"BRCA1", "MYC"},
	}))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}

	if g.NumberOfNodes() != 4 {
		t.Errorf("Expected 4 nodes, got %d", g.NumberOfNodes())
	}
	if g.NumberOfEdges() != 3 {
		t.Errorf("Expected 3 edges, got %d", g.NumberOfEdges())
	}

	want := []string{"BRCA1", "TP53", "EGFR", "MYC"}
	if got := g.Nodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}

	if g.Degree("BRCA1") != 3 {
		t.Errorf("Expected degree 3 for BRCA1, got %d", g.Degree("BRCA1"))
	}
	if !g.HasEdge("TP53", "BRCA1") {
		t.Error("Expected edge TP53-BRCA1 in either order")
	}
	if g.HasEdge("TP53", "EGFR") {
		t.Error("Unexpected edge TP53-EGFR")
	}
	if !g.IsConnected() {
		t.Error("Expected star to be connected")
	}
}

// TestBuildNetwork_Empty checks the no-data case
func TestBuildNetwork_Empty(t *testing.T) {
	for _, edges := range [][]Edge{nil, {}} {
		g, err := BuildNetwork(edges)
		if err != nil {
			t.Fatalf("BuildNetwork failed: %v", err)
		}
		if !g.IsEmpty() || g.NumberOfNodes() != 0 || g.NumberOfEdges() != 0 {
			t.Errorf("Expected empty graph, got %d nodes / %d edges", g.NumberOfNodes(), g.NumberOfEdges())
		}
		if g.IsConnected() {
			t.Error("Empty graph should not be connected")
		}
	}
}

// TestBuildNetwork_Duplicates checks that repeated pairs collapse
func TestBuildNetwork_Duplicates(t *testing.T) {
	g, err := BuildNetwork(EdgesFromPairs([][2]string{
		{"A", "B"},
		{"B", "A"},
		{"A", "B"},
		{"B", "C"},
	}))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}

	if g.NumberOfEdges() != 2 {
		t.Errorf("Expected 2 edges after dedup, got %d", g.NumberOfEdges())
	}
	if g.Degree("A") != 1 || g.Degree("B") != 2 {
		t.Errorf("Unexpected degrees A=%d B=%d", g.Degree("A"), g.Degree("B"))
	}
	if first := g.Edges()[0]; first != (Edge{A: "A", B: "B"}) {
		t.Errorf("Expected first-seen orientation to be kept, got %+v", first)
	}
}

// TestBuildNetwork_SelfLoop covers the degenerate self-interaction case
func TestBuildNetwork_SelfLoop(t *testing.T) {
	g, err := BuildNetwork(EdgesFromPairs([][2]string{
		{"TP53", "TP53"},
		{"TP53", "MDM2"},
		{"TP53", "TP53"},
	}))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}

	if g.NumberOfNodes() != 2 {
		t.Errorf("Expected 2 nodes, got %d", g.NumberOfNodes())
	}
	if g.NumberOfEdges() != 2 {
		t.Errorf("Expected loop + 1 edge, got %d edges", g.NumberOfEdges())
	}
	if !g.HasSelfLoop("TP53") || !g.HasEdge("TP53", "TP53") {
		t.Error("Expected TP53 self-loop")
	}
	if g.Degree("TP53") != 3 {
		t.Errorf("Expected TP53 degree 3 (loop counts twice), got %d", g.Degree("TP53"))
	}
	if got := g.Neighbors("TP53"); !reflect.DeepEqual(got, []string{"MDM2"}) {
		t.Errorf("Neighbors(TP53) = %v, want [MDM2]", got)
	}
	if g.GetStatistics().SelfLoopCount != 1 {
		t.Errorf("Expected 1 self-loop, got %d", g.GetStatistics().SelfLoopCount)
	}
	if edges := g.Edges(); !edges[0].IsSelfLoop() || edges[1].IsSelfLoop() {
		t.Errorf("Edges() = %v, want the loop first and MDM2 second", edges)
	}
}

// TestBuildNetwork_MissingEndpoint checks that malformed input fails fast
func TestBuildNetwork_MissingEndpoint(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		index int
	}{
		{"missing B", []Edge{{A: "A", B: "B"}, {A: "C"}}, 1},
		{"missing A", []Edge{{B: "B"}}, 0},
		{"blank A", []Edge{{A: "A", B: "B"}, {A: "B", B: "C"}, {A: "  ", B: "C"}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildNetwork(tt.edges)
			if g != nil {
				t.Error("Expected no partial graph on validation failure")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			if vErr.Index != tt.index {
				t.Errorf("Expected index %d, got %d", tt.index, vErr.Index)
			}
		})
	}
}

func TestConnectedComponents(t *testing.T) {
	g, err := BuildNetwork(EdgesFromPairs([][2]string{
		{"A", "B"},
		{"C", "D"},
		{"B", "E"},
	}))
	if err != nil {
		t.Fatalf("BuildNetwork failed: %v", err)
	}

	components := g.ConnectedComponents()
	if len(components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(components))
	}
	if !reflect.DeepEqual(components[0], []string{"A", "B", "E"}) {
		t.Errorf("First component = %v", components[0])
	}
	if !reflect.DeepEqual(components[1], []string{"C", "D"}) {
		t.Errorf("Second component = %v", components[1])
	}
	if g.IsConnected() {
		t.Error("Expected graph to be disconnected")
	}
}

func TestGraphAccessorsReturnCopies(t *testing.T) {
	g, _ := BuildNetwork([]Edge{{A: "A", B: "B"}})

	nodes := g.Nodes()
	nodes[0] = "Z"
	edges := g.Edges()
	edges[0].A = "Z"

	if g.Nodes()[0] != "A" || g.Edges()[0].A != "A" {
		t.Error("Graph was mutated through an accessor")
	}
	if g.Neighbors("missing") != nil {
		t.Error("Expected nil neighbours for unknown node")
	}
}

// pairsFromIndices turns a flat index list into edges over a small alphabet so
// that duplicates and self-loops occur often.
func pairsFromIndices(ids []int) []Edge {
	edges := make([]Edge, 0, len(ids)/2)
	for i := 0; i+1 < len(ids); i += 2 {
		edges = append(edges, Edge{A: fmt.Sprintf("P%d", ids[i]), B: fmt.Sprintf("P%d", ids[i+1])})
	}
	return edges
}

// TestBuildNetworkInvariants uses property-based testing to verify builder invariants
func TestBuildNetworkInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("node set equals distinct endpoints", prop.ForAll(
		func(ids []int) bool {
			edges := pairsFromIndices(ids)
			g, err := BuildNetwork(edges)
			if err != nil {
				return false
			}

			want := make(map[string]struct{})
			for _, e := range edges {
				want[e.A] = struct{}{}
				want[e.B] = struct{}{}
			}
			if len(want) != g.NumberOfNodes() {
				return false
			}
			for id := range want {
				if !g.HasNode(id) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.Property("no duplicate unordered edges", prop.ForAll(
		func(ids []int) bool {
			g, err := BuildNetwork(pairsFromIndices(ids))
			if err != nil {
				return false
			}
			seen := make(map[edgeKey]bool)
			for _, e := range g.Edges() {
				if seen[e.key()] {
					return false
				}
				seen[e.key()] = true
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.Property("build is idempotent", prop.ForAll(
		func(ids []int) bool {
			edges := pairsFromIndices(ids)
			g1, err1 := BuildNetwork(edges)
			g2, err2 := BuildNetwork(edges)
			if err1 != nil || err2 != nil {
				return false
			}

			n1, n2 := g1.SortedNodes(), g2.SortedNodes()
			e1, e2 := sortedKeys(g1), sortedKeys(g2)
			return reflect.DeepEqual(n1, n2) && reflect.DeepEqual(e1, e2)
		},
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.Property("handshake: degrees sum to twice the edge count", prop.ForAll(
		func(ids []int) bool {
			g, err := BuildNetwork(pairsFromIndices(ids))
			if err != nil {
				return false
			}
			sum := 0
			for _, id := range g.Nodes() {
				sum += g.Degree(id)
			}
			return sum == 2*g.NumberOfEdges()
		},
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.TestingRun(t)
}

func sortedKeys(g *Graph) []string {
	keys := make([]string, 0, g.NumberOfEdges())
	for _, e := range g.Edges() {
		k := e.key()
		keys = append(keys, k.lo+"|"+k.hi)
	}
	sort.Strings(keys)
	return keys
}
