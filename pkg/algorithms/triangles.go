package algorithms

import "github.com/dd0wney/ppinet/pkg/network"

// TriangleCountResult holds triangle counting results including per-protein
// counts, the global count, local clustering coefficients and the proteins
// taking part in the most triangles.
type TriangleCountResult struct {
	PerNode                map[string]int
	GlobalCount            int
	ClusteringCoefficients Scores
	AverageClustering      float64
	TopNodes               []RankedNode
}

// CountTriangles counts triangles in the interaction network. For each
// protein u it checks every pair (v,w) of u's neighbours; if v and w also
// interact, that is a triangle. Each triangle is counted once per
// participating protein, so GlobalCount = sum(PerNode) / 3. Self-loops never
// close a triangle. Clustering coefficients are computed in the same pass.
func CountTriangles(graph *network.Graph) (*TriangleCountResult, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	n := graph.NumberOfNodes()
	adjacent := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		set := make(map[int]bool)
		for _, j := range graph.AdjacencyIndices(i) {
			set[j] = true
		}
		adjacent[i] = set
	}

	perNode := make(map[string]int, n)
	counts := make([]int, n)
	total := 0
	for u := 0; u < n; u++ {
		neighbors := graph.AdjacencyIndices(u)
		count := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if adjacent[neighbors[i]][neighbors[j]] {
					count++
				}
			}
		}
		counts[u] = count
		perNode[graph.NodeAt(u)] = count
		total += count
	}

	coefficients := make([]float64, n)
	sum := 0.0
	for u := 0; u < n; u++ {
		k := len(graph.AdjacencyIndices(u))
		if k < 2 {
			continue
		}
		possible := k * (k - 1) / 2
		coefficients[u] = float64(counts[u]) / float64(possible)
		sum += coefficients[u]
	}

	average := 0.0
	if n > 0 {
		average = sum / float64(n)
	}

	floatScores := make(Scores, n)
	for id, c := range perNode {
		floatScores[id] = float64(c)
	}

	return &TriangleCountResult{
		PerNode:                perNode,
		GlobalCount:            total / 3,
		ClusteringCoefficients: toScores(graph, coefficients),
		AverageClustering:      average,
		TopNodes:               findTopNodes(floatScores, 10),
	}, nil
}
