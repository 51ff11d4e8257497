package algorithms

import (
	"math"

	"github.com/dd0wney/ppinet/pkg/network"
)

// PageRankResult contains PageRank scores for all nodes. When the solver
// stops at MaxIterations the scores are the last iterate and PageRank also
// returns a *ConvergenceError.
type PageRankResult struct {
	Scores     Scores // Protein -> PageRank score
	Iterations int
}

// PageRank computes the damped random-walk stationary distribution.
//
// Every undirected edge is walked in both directions and a self-loop once.
// Nodes without out-links spread their mass uniformly, as does teleportation.
// The iteration stops when the L1 change drops below n*Tolerance. On failure
// the partial result is returned alongside a *ConvergenceError.
func PageRank(graph *network.Graph, opts PageRankOptions) (*PageRankResult, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	n := graph.NumberOfNodes()
	if n == 0 {
		return &PageRankResult{Scores: make(Scores)}, nil
	}

	// Out-degree in the directed view: one per neighbour plus the loop
	outDegree := make([]int, n)
	for i := 0; i < n; i++ {
		outDegree[i] = len(graph.AdjacencyIndices(i))
		if graph.SelfLoopAt(i) {
			outDegree[i]++
		}
	}

	// Initialize PageRank scores (uniform distribution)
	scores := make([]float64, n)
	initialScore := 1.0 / float64(n)
	for i := range scores {
		scores[i] = initialScore
	}

	newScores := make([]float64, n)
	teleport := (1.0 - opts.DampingFactor) / float64(n)
	threshold := float64(n) * opts.Tolerance
	converged := false
	iterations := 0
	residual := math.Inf(1)

	for iterations < opts.MaxIterations {
		iterations++

		danglingSum := 0.0
		for i := range newScores {
			newScores[i] = 0.0
			if outDegree[i] == 0 {
				danglingSum += scores[i]
			}
		}

		// Push each node's damped mass along its out-links
		for i := 0; i < n; i++ {
			if outDegree[i] == 0 {
				continue
			}
			share := opts.DampingFactor * scores[i] / float64(outDegree[i])
			for _, j := range graph.AdjacencyIndices(i) {
				newScores[j] += share
			}
			if graph.SelfLoopAt(i) {
				newScores[i] += share
			}
		}

		base := teleport + opts.DampingFactor*danglingSum/float64(n)
		residual = 0.0
		for i := range newScores {
			newScores[i] += base
			residual += math.Abs(newScores[i] - scores[i])
		}

		scores, newScores = newScores, scores

		if residual < threshold {
			converged = true
			break
		}
	}

	// Normalize scores to sum to 1
	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	if sum > 0 {
		for i := range scores {
			scores[i] /= sum
		}
	}

	pr := &PageRankResult{
		Scores:     toScores(graph, scores),
		Iterations: iterations,
	}

	if !converged {
		return pr, &ConvergenceError{
			Metric:     MetricPageRank,
			Iterations: iterations,
			Residual:   residual,
			Tolerance:  opts.Tolerance,
		}
	}

	return pr, nil
}
