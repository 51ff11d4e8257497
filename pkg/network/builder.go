package network

import (
	"errors"
	"fmt"

	"github.com/dd0wney/ppinet/pkg/validation"
)

// ErrEmptyNetwork signals that an interaction list produced no nodes.
// BuildNetwork itself never returns it; callers use it to report "no data".
var ErrEmptyNetwork = errors.New("network has no interactions")

// ValidationError reports a structurally malformed interaction pair.
type ValidationError struct {
	Index  int  // position of the offending pair in the input
	Edge   Edge // the pair as supplied
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid interaction at index %d (%q, %q): %v", e.Index, e.Edge.A, e.Edge.B, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// BuildNetwork converts an ordered interaction list into an undirected graph.
// Duplicate pairs (in either order) collapse into one edge; self-loops are kept.
// A pair with a missing endpoint fails the whole build with a *ValidationError.
func BuildNetwork(edges []Edge) (*Graph, error) {
	for i, e := range edges {
		req := validation.InteractionRequest{ProteinA: e.A, ProteinB: e.B}
		if err := validation.ValidateInteraction(&req); err != nil {
			return nil, &ValidationError{Index: i, Edge: e, Reason: err}
		}
	}

	g := newGraph(len(edges))
	seen := make(map[edgeKey]struct{}, len(edges))

	for _, e := range edges {
		k := e.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		a := g.addNode(e.A)
		b := g.addNode(e.B)
		g.edges = append(g.edges, e)

		if e.IsSelfLoop() {
			g.loops[a] = true
			continue
		}
		g.adj[a] = append(g.adj[a], b)
		g.adj[b] = append(g.adj[b], a)
	}

	return g, nil
}

// EdgesFromPairs converts two-element string pairs into edges.
func EdgesFromPairs(pairs [][2]string) []Edge {
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{A: p[0], B: p[1]}
	}
	return edges
}
