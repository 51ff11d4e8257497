package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry groups the Prometheus collectors of the HTTP layer, the analysis
// pipeline and the interaction fetchers.
type Registry struct {
	// HTTP
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Analysis pipeline
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	StageDuration       *prometheus.HistogramVec
	NetworkNodes        *prometheus.HistogramVec
	NetworkEdges        *prometheus.HistogramVec
	MetricFailuresTotal *prometheus.CounterVec
	MetricIterations    *prometheus.HistogramVec
	AnalysesInFlight    prometheus.Gauge

	// Interaction fetchers
	FetchesTotal        *prometheus.CounterVec
	FetchDuration       *prometheus.HistogramVec
	InteractionsFetched *prometheus.CounterVec

	// Process
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	sysMu    sync.Mutex // serialises UpdateSystemMetrics
}

// DefaultRegistry is the process-wide registry served on /metrics.
var DefaultRegistry = sync.OnceValue(NewRegistry)

// NewRegistry creates a registry with every ppinet metric registered. Each
// registry is independent, so tests can create their own.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.initHTTPMetrics()
	r.initAnalysisMetrics()
	r.initFetchMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry exposes the registry for promhttp and for gathering
// in tests.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
