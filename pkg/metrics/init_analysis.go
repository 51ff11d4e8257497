package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// sizeBuckets covers networks from a lone self-interacting protein to a
// large neighbourhood.
var sizeBuckets = []float64{1, 5, 10, 50, 100, 1000, 10000}

func (r *Registry) initAnalysisMetrics() {
	factory := promauto.With(r.registry)

	r.AnalysesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Network analyses by interaction source and outcome",
	}, []string{"source", "status"})

	r.AnalysisDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "End-to-end analysis duration",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	}, []string{"source"})

	r.StageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of each analysis stage (fetch, build, centrality, layout)",
		Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
	}, []string{"stage"})

	r.NetworkNodes = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "network_nodes",
		Help:      "Proteins per analysed network",
		Buckets:   sizeBuckets,
	}, []string{"source"})

	r.NetworkEdges = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "network_edges",
		Help:      "Interactions per analysed network",
		Buckets:   sizeBuckets,
	}, []string{"source"})

	r.MetricFailuresTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "centrality",
		Name:      "failures_total",
		Help:      "Centrality metrics that failed to produce scores",
	}, []string{"metric"})

	r.MetricIterations = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "centrality",
		Name:      "iterations",
		Help:      "Power iterations used by iterative centrality metrics",
		Buckets:   []float64{1, 5, 10, 25, 50, 75, 100},
	}, []string{"metric"})

	r.AnalysesInFlight = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "analyses_in_flight",
		Help:      "Analyses currently being computed",
	})
}
