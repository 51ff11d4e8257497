package algorithms

import (
	"fmt"
	"strings"

	"github.com/dd0wney/ppinet/pkg/network"
)

// Metric names one of the five centrality measures.
type Metric string

const (
	MetricDegree      Metric = "Degree Centrality"
	MetricBetweenness Metric = "Betweenness Centrality"
	MetricCloseness   Metric = "Closeness Centrality"
	MetricEigenvector Metric = "Eigenvector Centrality"
	MetricPageRank    Metric = "PageRank"
)

// AllMetrics lists the metrics in display order.
var AllMetrics = []Metric{
	MetricDegree,
	MetricBetweenness,
	MetricCloseness,
	MetricEigenvector,
	MetricPageRank,
}

// ParseMetric accepts a full metric name or a short alias such as "degree"
// or "pagerank", case-insensitively.
func ParseMetric(s string) (Metric, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, m := range AllMetrics {
		if strings.ToLower(string(m)) == key {
			return m, nil
		}
	}
	switch key {
	case "degree":
		return MetricDegree, nil
	case "betweenness":
		return MetricBetweenness, nil
	case "closeness":
		return MetricCloseness, nil
	case "eigenvector":
		return MetricEigenvector, nil
	case "pagerank", "page_rank":
		return MetricPageRank, nil
	}
	return "", fmt.Errorf("unknown centrality metric %q", s)
}

// Short returns the lower-case alias of the metric.
func (m Metric) Short() string {
	switch m {
	case MetricDegree:
		return "degree"
	case MetricBetweenness:
		return "betweenness"
	case MetricCloseness:
		return "closeness"
	case MetricEigenvector:
		return "eigenvector"
	case MetricPageRank:
		return "pagerank"
	default:
		return strings.ToLower(string(m))
	}
}

// Description says in one line what a high score means.
func (m Metric) Description() string {
	switch m {
	case MetricDegree:
		return "share of the other proteins it interacts with directly"
	case MetricBetweenness:
		return "how often it lies on shortest paths between other proteins"
	case MetricCloseness:
		return "inverse average distance to every reachable protein"
	case MetricEigenvector:
		return "interacts with proteins that are themselves central"
	case MetricPageRank:
		return "likelihood a random walk over interactions ends at it"
	default:
		return ""
	}
}

// CentralityResult holds the scores of every metric that succeeded and the
// error of every metric that did not. A metric appears in exactly one of
// Scores and Errors.
type CentralityResult struct {
	Scores     map[Metric]Scores
	Errors     map[Metric]error
	Iterations map[Metric]int // iterative metrics only
	TopNodes   map[Metric][]RankedNode
}

func newCentralityResult() *CentralityResult {
	return &CentralityResult{
		Scores:     make(map[Metric]Scores, len(AllMetrics)),
		Errors:     make(map[Metric]error),
		Iterations: make(map[Metric]int, 2),
		TopNodes:   make(map[Metric][]RankedNode, len(AllMetrics)),
	}
}

// CalculateCentralities computes all five metrics with DefaultOptions.
func CalculateCentralities(graph *network.Graph) (*CentralityResult, error) {
	return CalculateCentralitiesWithOptions(graph, DefaultOptions())
}

// CalculateCentralitiesWithOptions computes all five metrics. A failing
// metric is recorded in Errors and does not prevent the others; the returned
// error is non-nil only for a nil graph. An empty graph yields five empty
// score maps.
func CalculateCentralitiesWithOptions(graph *network.Graph, opts Options) (*CentralityResult, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}

	result := newCentralityResult()

	record := func(metric Metric, scores Scores, err error) {
		if err != nil {
			result.Errors[metric] = err
			return
		}
		result.Scores[metric] = scores
		result.TopNodes[metric] = findTopNodes(scores, opts.TopN)
	}

	degree, err := DegreeCentrality(graph)
	record(MetricDegree, degree, err)

	betweenness, err := BetweennessCentrality(graph)
	record(MetricBetweenness, betweenness, err)

	closeness, err := ClosenessCentrality(graph)
	record(MetricCloseness, closeness, err)

	eigen, err := EigenvectorCentrality(graph, opts.Eigenvector)
	if err != nil {
		record(MetricEigenvector, nil, err)
	} else {
		result.Iterations[MetricEigenvector] = eigen.Iterations
		record(MetricEigenvector, eigen.Scores, nil)
	}

	pr, err := PageRank(graph, opts.PageRank)
	if pr != nil {
		result.Iterations[MetricPageRank] = pr.Iterations
	}
	if err != nil {
		record(MetricPageRank, nil, err)
	} else {
		record(MetricPageRank, pr.Scores, nil)
	}

	return result, nil
}

// Succeeded reports whether metric produced scores.
func (r *CentralityResult) Succeeded(metric Metric) bool {
	_, ok := r.Scores[metric]
	return ok
}

// Err returns the failure recorded for metric, or nil.
func (r *CentralityResult) Err(metric Metric) error {
	return r.Errors[metric]
}

// Score returns the score of protein under metric. ok is false when the
// metric failed or the protein is unknown.
func (r *CentralityResult) Score(metric Metric, protein string) (float64, bool) {
	scores, ok := r.Scores[metric]
	if !ok {
		return 0, false
	}
	v, ok := scores[protein]
	return v, ok
}

// Metrics returns the successful metrics in display order.
func (r *CentralityResult) Metrics() []Metric {
	out := make([]Metric, 0, len(r.Scores))
	for _, m := range AllMetrics {
		if _, ok := r.Scores[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Top returns up to n proteins ranked by metric, best first.
func (r *CentralityResult) Top(metric Metric, n int) []RankedNode {
	scores, ok := r.Scores[metric]
	if !ok || n <= 0 {
		return nil
	}
	if cached := r.TopNodes[metric]; len(cached) >= n || len(cached) == len(scores) {
		if n < len(cached) {
			return cached[:n]
		}
		return cached
	}
	return findTopNodes(scores, n)
}

// ErrorMessages returns the recorded failures as strings keyed by metric name.
func (r *CentralityResult) ErrorMessages() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for m, err := range r.Errors {
		out[string(m)] = err.Error()
	}
	return out
}

// ByMetricName returns the successful scores keyed by metric display name.
func (r *CentralityResult) ByMetricName() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(r.Scores))
	for m, scores := range r.Scores {
		out[string(m)] = scores
	}
	return out
}
