package pipeline

import (
	"sort"
	"time"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/dd0wney/ppinet/pkg/visualization"
)

// Stage names used in logs, timings and metrics
const (
	StageValidate = "validate"
	StageFetch    = "fetch"
	StageBuild    = "build"
	StageCompute  = "compute"
	StageLayout   = "layout"
)

// Report is the outcome of one analysis run.
type Report struct {
	RunID             string                             `json:"run_id"`
	ProteinID         string                             `json:"protein_id"`
	Source            interactions.Source                `json:"source"`
	PrimaryMetric     algorithms.Metric                  `json:"primary_metric"`
	Interactions      []network.Edge                     `json:"interactions"`
	Statistics        network.Statistics                 `json:"statistics"`
	Centralities      map[string]map[string]float64      `json:"centralities"`
	MetricErrors      map[string]string                  `json:"metric_errors,omitempty"`
	TopNodes          map[string][]algorithms.RankedNode `json:"top_nodes"`
	Triangles         int                                `json:"triangles"`
	AverageClustering float64                            `json:"average_clustering"`
	Clustering        algorithms.Scores                  `json:"clustering,omitempty"`
	Layout            *visualization.VizData             `json:"layout,omitempty"`
	TimingsMS         map[string]float64                 `json:"timings_ms"`
	CreatedAt         time.Time                          `json:"created_at"`

	Graph         *network.Graph               `json:"-"`
	Result        *algorithms.CentralityResult `json:"-"`
	Visualization *visualization.Visualization `json:"-"`
}

func newReport(runID, protein string, source interactions.Source, metric algorithms.Metric, createdAt time.Time) *Report {
	return &Report{
		RunID:         runID,
		ProteinID:     protein,
		Source:        source,
		PrimaryMetric: metric,
		Centralities:  map[string]map[string]float64{},
		TopNodes:      map[string][]algorithms.RankedNode{},
		TimingsMS:     map[string]float64{},
		CreatedAt:     createdAt,
	}
}

func (r *Report) setCentralities(result *algorithms.CentralityResult) {
	r.Result = result
	r.Centralities = result.ByMetricName()
	if len(result.Errors) > 0 {
		r.MetricErrors = result.ErrorMessages()
	}
	for metric, top := range result.TopNodes {
		r.TopNodes[string(metric)] = top
	}
}

func (r *Report) setTiming(stage string, d time.Duration) {
	r.TimingsMS[stage] = float64(d.Microseconds()) / 1000
}

// Proteins returns the network's proteins in first-appearance order. A
// decoded report has no graph, so the interaction list is used instead.
func (r *Report) Proteins() []string {
	if r.Graph != nil {
		return r.Graph.Nodes()
	}
	seen := make(map[string]bool, len(r.Interactions)*2)
	var out []string
	for _, e := range r.Interactions {
		for _, p := range []string{e.A, e.B} {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// RankedProteins returns the proteins ordered by the primary metric, highest
// first. Ties keep first-appearance order. When the primary metric is unset
// or failed, the order is that of Proteins.
func (r *Report) RankedProteins() []string {
	proteins := r.Proteins()
	scores, ok := r.Centralities[string(r.PrimaryMetric)]
	if !ok || r.PrimaryMetric == "" {
		return proteins
	}
	sort.SliceStable(proteins, func(i, j int) bool {
		return scores[proteins[i]] > scores[proteins[j]]
	})
	return proteins
}

// Failed reports whether any metric failed.
func (r *Report) Failed() bool {
	return len(r.MetricErrors) > 0
}
