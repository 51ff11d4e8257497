package network

import (
	"sort"
)

// Edge is an undirected interaction between two protein identifiers.
// (A, B) and (B, A) describe the same edge.
type Edge struct {
	A string `json:"protein_a" yaml:"protein_a"`
	B string `json:"protein_b" yaml:"protein_b"`
}

// IsSelfLoop reports whether both endpoints are the same protein.
func (e Edge) IsSelfLoop() bool {
	return e.A == e.B
}

// key returns an order-independent identity for the edge.
func (e Edge) key() edgeKey {
	if e.A <= e.B {
		return edgeKey{e.A, e.B}
	}
	return edgeKey{e.B, e.A}
}

type edgeKey struct {
	lo, hi string
}

// Graph is an immutable undirected simple graph (self-loops allowed) keyed by
// protein identifier. Nodes and edges keep the order of first appearance.
type Graph struct {
	nodes []string
	index map[string]int
	edges []Edge
	adj   [][]int
	loops []bool
}

func newGraph(capacity int) *Graph {
	return &Graph{
		nodes: make([]string, 0, capacity),
		index: make(map[string]int, capacity),
		edges: make([]Edge, 0, capacity),
		adj:   make([][]int, 0, capacity),
		loops: make([]bool, 0, capacity),
	}
}

func (g *Graph) addNode(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.index[id] = i
	g.adj = append(g.adj, nil)
	g.loops = append(g.loops, false)
	return i
}

// Nodes returns the node identifiers in first-appearance order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// SortedNodes returns the node identifiers in lexical order.
func (g *Graph) SortedNodes() []string {
	out := g.Nodes()
	sort.Strings(out)
	return out
}

// Edges returns the distinct edges in first-appearance order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NumberOfNodes returns the node count.
func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

// NumberOfEdges returns the distinct edge count, self-loops included.
func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.nodes) == 0
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether a and b are adjacent (in either order).
func (g *Graph) HasEdge(a, b string) bool {
	i, ok := g.index[a]
	if !ok {
		return false
	}
	j, ok := g.index[b]
	if !ok {
		return false
	}
	if i == j {
		return g.loops[i]
	}
	for _, n := range g.adj[i] {
		if n == j {
			return true
		}
	}
	return false
}

// HasSelfLoop reports whether id interacts with itself.
func (g *Graph) HasSelfLoop(id string) bool {
	i, ok := g.index[id]
	return ok && g.loops[i]
}

// Neighbors returns the proteins adjacent to id, excluding id itself even when
// it carries a self-loop. Returns nil for unknown nodes.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.adj[i]))
	for k, n := range g.adj[i] {
		out[k] = g.nodes[n]
	}
	return out
}

// Degree returns the graph-theoretic degree of id: one per neighbour and two
// for a self-loop. Unknown nodes have degree 0.
func (g *Graph) Degree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	d := len(g.adj[i])
	if g.loops[i] {
		d += 2
	}
	return d
}

// IndexOf returns the dense index of id, used by algorithms that work on
// slices rather than maps.
func (g *Graph) IndexOf(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// NodeAt returns the identifier stored at dense index i.
func (g *Graph) NodeAt(i int) string {
	return g.nodes[i]
}

// AdjacencyIndices returns the neighbour indices of node i, excluding i.
// The returned slice must not be modified.
func (g *Graph) AdjacencyIndices(i int) []int {
	return g.adj[i]
}

// SelfLoopAt reports whether the node at dense index i has a self-loop.
func (g *Graph) SelfLoopAt(i int) bool {
	return g.loops[i]
}

// ConnectedComponents returns the node sets of each connected component,
// ordered by the first appearance of their earliest node.
func (g *Graph) ConnectedComponents() [][]string {
	seen := make([]bool, len(g.nodes))
	components := make([][]string, 0)

	for start := range g.nodes {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []int{start}
		component := make([]string, 0)

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			component = append(component, g.nodes[v])
			for _, w := range g.adj[v] {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// IsConnected reports whether the graph has exactly one connected component.
// The empty graph is not connected.
func (g *Graph) IsConnected() bool {
	return len(g.nodes) > 0 && len(g.ConnectedComponents()) == 1
}

// Statistics summarises the graph for display.
type Statistics struct {
	NodeCount      int `json:"node_count"`
	EdgeCount      int `json:"edge_count"`
	SelfLoopCount  int `json:"self_loop_count"`
	ComponentCount int `json:"component_count"`
}

// GetStatistics returns node, edge, self-loop and component counts.
func (g *Graph) GetStatistics() Statistics {
	loops := 0
	for _, l := range g.loops {
		if l {
			loops++
		}
	}
	return Statistics{
		NodeCount:      len(g.nodes),
		EdgeCount:      len(g.edges),
		SelfLoopCount:  loops,
		ComponentCount: len(g.ConnectedComponents()),
	}
}
