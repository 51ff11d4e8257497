package algorithms

import (
	"errors"
	"fmt"
)

var (
	// ErrNilGraph is returned when an algorithm is handed a nil graph
	ErrNilGraph = errors.New("graph is nil")

	// ErrNotConverged matches every *ConvergenceError via errors.Is
	ErrNotConverged = errors.New("iterative solver did not converge")

	// ErrDisconnectedGraph is the cause recorded when eigenvector centrality
	// is requested on a graph with more than one component
	ErrDisconnectedGraph = errors.New("graph is disconnected; principal eigenvector is not unique")
)

// ConvergenceError reports that a power-iteration metric failed to converge.
// It is recorded per metric and never aborts the other metrics.
type ConvergenceError struct {
	Metric     Metric
	Iterations int     // iterations performed before giving up
	Residual   float64 // last L1 change between iterates
	Tolerance  float64 // per-node tolerance; the threshold is n*Tolerance
	Cause      error   // optional structural reason
}

func (e *ConvergenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Metric, e.Cause)
	}
	return fmt.Sprintf("%s: power iteration failed to converge within %d iterations (residual %.3g, tolerance %.3g)",
		e.Metric, e.Iterations, e.Residual, e.Tolerance)
}

func (e *ConvergenceError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrNotConverged) true for any ConvergenceError.
func (e *ConvergenceError) Is(target error) bool {
	return target == ErrNotConverged
}
