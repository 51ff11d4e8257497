package algorithms

import (
	"github.com/dd0wney/ppinet/pkg/network"
)

// Scores maps a protein identifier to a centrality score.
type Scores map[string]float64

// toScores converts a dense score slice into a per-protein map.
func toScores(graph *network.Graph, dense []float64) Scores {
	scores := make(Scores, len(dense))
	for i, v := range dense {
		scores[graph.NodeAt(i)] = v
	}
	return scores
}

// brandesBetweenness runs the Brandes accumulation from every node over the
// unweighted undirected graph and returns raw (unnormalised) pair-dependency
// sums. Each unordered pair is counted twice, once from each endpoint.
func brandesBetweenness(graph *network.Graph) []float64 {
	n := graph.NumberOfNodes()
	betweenness := make([]float64, n)

	stack := make([]int, 0, n)
	queue := make([]int, 0, n)
	predecessors := make([][]int, n)
	sigma := make([]float64, n)
	distance := make([]int, n)
	delta := make([]float64, n)

	for source := 0; source < n; source++ {
		stack = stack[:0]
		queue = queue[:0]
		for i := 0; i < n; i++ {
			predecessors[i] = predecessors[i][:0]
			sigma[i] = 0.0
			distance[i] = -1
			delta[i] = 0.0
		}

		sigma[source] = 1.0
		distance[source] = 0
		queue = append(queue, source)

		for head := 0; head < len(queue); head++ {
			v := queue[head]
			stack = append(stack, v)

			for _, w := range graph.AdjacencyIndices(v) {
				if distance[w] < 0 {
					queue = append(queue, w)
					distance[w] = distance[v] + 1
				}

				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of dependencies in reverse BFS order
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness
}

// BetweennessCentrality computes normalised betweenness centrality for all nodes.
// Measures how often a node lies on shortest paths between other nodes.
//
// The raw Brandes sums count every unordered pair from both ends, so dividing
// by (n-1)(n-2) equals the undirected factor 2/((n-1)(n-2)) applied to the
// per-pair sum. Graphs with fewer than three nodes score 0 everywhere.
func BetweennessCentrality(graph *network.Graph) (Scores, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	raw := brandesBetweenness(graph)

	n := len(raw)
	if n > 2 {
		normFactor := 1.0 / float64((n-1)*(n-2))
		for i := range raw {
			raw[i] *= normFactor
		}
	} else {
		for i := range raw {
			raw[i] = 0.0
		}
	}

	return toScores(graph, raw), nil
}

// bfsDistances returns hop distances from source; unreachable nodes are -1.
func bfsDistances(graph *network.Graph, source int, distance []int, queue []int) ([]int, []int) {
	for i := range distance {
		distance[i] = -1
	}
	distance[source] = 0

	queue = append(queue[:0], source)
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		for _, w := range graph.AdjacencyIndices(v) {
			if distance[w] < 0 {
				distance[w] = distance[v] + 1
				queue = append(queue, w)
			}
		}
	}

	return distance, queue
}

// ClosenessCentrality computes closeness centrality for all nodes with the
// Wasserman-Faust correction for disconnected graphs:
//
//	C(v) = (r-1)/sum(d(v,u)) * (r-1)/(n-1)
//
// where r counts the nodes reachable from v (v included). A node that reaches
// nothing scores 0.
func ClosenessCentrality(graph *network.Graph) (Scores, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	n := graph.NumberOfNodes()
	closeness := make([]float64, n)
	distance := make([]int, n)
	queue := make([]int, 0, n)

	for source := 0; source < n; source++ {
		distance, queue = bfsDistances(graph, source, distance, queue)

		totalDistance := 0
		reachable := len(queue) // BFS order holds every reached node, source included
		for _, d := range distance {
			if d > 0 {
				totalDistance += d
			}
		}

		if totalDistance > 0 && n > 1 {
			r := float64(reachable - 1)
			closeness[source] = (r / float64(totalDistance)) * (r / float64(n-1))
		} else {
			closeness[source] = 0.0
		}
	}

	return toScores(graph, closeness), nil
}

// DegreeCentrality computes degree centrality for all nodes: the number of
// distinct neighbours divided by n-1. Self-loops do not count, which keeps the
// score in [0, 1]. A single-node graph scores 0.
func DegreeCentrality(graph *network.Graph) (Scores, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	n := graph.NumberOfNodes()
	degree := make([]float64, n)

	if n > 1 {
		s := 1.0 / float64(n-1)
		for i := 0; i < n; i++ {
			degree[i] = float64(len(graph.AdjacencyIndices(i))) * s
		}
	}

	return toScores(graph, degree), nil
}
