package algorithms

// PageRankOptions configures PageRank algorithm
type PageRankOptions struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int
	Tolerance     float64 // Per-node convergence threshold
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// EigenvectorOptions configures eigenvector centrality
type EigenvectorOptions struct {
	MaxIterations int
	Tolerance     float64 // Per-node convergence threshold

	// AllowDisconnected skips the connectivity check. The iteration then
	// returns whichever eigenvector the start vector leads to.
	AllowDisconnected bool
}

// DefaultEigenvectorOptions returns default eigenvector configuration
func DefaultEigenvectorOptions() EigenvectorOptions {
	return EigenvectorOptions{
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// Options bundles the settings of every metric computed by CalculateCentralities.
type Options struct {
	PageRank    PageRankOptions
	Eigenvector EigenvectorOptions
	TopN        int // size of the ranked lists kept per metric
}

// DefaultOptions returns the standard settings: damping 0.85, 100 iterations
// and a 1e-6 tolerance for both iterative solvers.
func DefaultOptions() Options {
	return Options{
		PageRank:    DefaultPageRankOptions(),
		Eigenvector: DefaultEigenvectorOptions(),
		TopN:        10,
	}
}
