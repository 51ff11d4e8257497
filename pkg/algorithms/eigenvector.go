package algorithms

import (
	"math"

	"github.com/dd0wney/ppinet/pkg/network"
)

// EigenvectorResult holds converged eigenvector scores; a run that does not
// converge returns an error instead.
type EigenvectorResult struct {
	Scores     Scores
	Iterations int
}

// EigenvectorCentrality approximates the principal eigenvector of the
// adjacency matrix by power iteration.
//
// The iteration multiplies by (A + I) rather than A: the shift leaves the
// eigenvectors unchanged but keeps bipartite graphs such as stars from
// oscillating. The start vector is uniform, every iterate is scaled to unit
// L2 norm, and the loop stops once the L1 change is below n*Tolerance.
//
// Disconnected graphs are rejected with a *ConvergenceError unless
// AllowDisconnected is set.
func EigenvectorCentrality(graph *network.Graph, opts EigenvectorOptions) (*EigenvectorResult, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	n := graph.NumberOfNodes()
	if n == 0 {
		return &EigenvectorResult{Scores: make(Scores)}, nil
	}

	if !opts.AllowDisconnected && !graph.IsConnected() {
		return nil, &ConvergenceError{
			Metric:    MetricEigenvector,
			Tolerance: opts.Tolerance,
			Cause:     ErrDisconnectedGraph,
		}
	}

	x := make([]float64, n)
	last := make([]float64, n)
	for i := range x {
		x[i] = 1.0 / float64(n)
	}

	threshold := float64(n) * opts.Tolerance
	residual := math.Inf(1)

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		copy(last, x)

		// x = (A + I) * last
		for i := 0; i < n; i++ {
			for _, j := range graph.AdjacencyIndices(i) {
				x[j] += last[i]
			}
			if graph.SelfLoopAt(i) {
				x[i] += last[i]
			}
		}

		norm := 0.0
		for _, v := range x {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}

		residual = 0.0
		for i := range x {
			x[i] /= norm
			residual += math.Abs(x[i] - last[i])
		}

		if residual < threshold {
			return &EigenvectorResult{
				Scores:     toScores(graph, x),
				Iterations: iter,
			}, nil
		}
	}

	return nil, &ConvergenceError{
		Metric:     MetricEigenvector,
		Iterations: opts.MaxIterations,
		Residual:   residual,
		Tolerance:  opts.Tolerance,
	}
}
