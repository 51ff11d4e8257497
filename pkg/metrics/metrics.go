package metrics

import (
	"runtime"
	"time"
)

// Analysis outcome labels
const (
	StatusSuccess  = "success"
	StatusEmpty    = "empty"
	StatusInvalid  = "invalid"
	StatusUpstream = "upstream_error"
	StatusError    = "error"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResponseSize records the size of an HTTP response body
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight increments the in-flight request gauge
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight request gauge
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// RecordAnalysis records one completed analysis and the size of its network
func (r *Registry) RecordAnalysis(source, status string, duration time.Duration, nodes, edges int) {
	r.AnalysesTotal.WithLabelValues(source, status).Inc()
	r.AnalysisDuration.WithLabelValues(source).Observe(duration.Seconds())

	if status == StatusSuccess {
		r.NetworkNodes.WithLabelValues(source).Observe(float64(nodes))
		r.NetworkEdges.WithLabelValues(source).Observe(float64(edges))
	}
}

// RecordStage records the duration of one analysis stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordMetricFailure counts a centrality metric that produced no scores
func (r *Registry) RecordMetricFailure(metric string) {
	r.MetricFailuresTotal.WithLabelValues(metric).Inc()
}

// RecordIterations records the iteration count of an iterative metric
func (r *Registry) RecordIterations(metric string, iterations int) {
	r.MetricIterations.WithLabelValues(metric).Observe(float64(iterations))
}

// RecordFetch records an interaction fetch
func (r *Registry) RecordFetch(source, status string, duration time.Duration, interactions int) {
	r.FetchesTotal.WithLabelValues(source, status).Inc()
	r.FetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if interactions > 0 {
		r.InteractionsFetched.WithLabelValues(source).Add(float64(interactions))
	}
}

// UpdateSystemMetrics refreshes uptime and Go runtime gauges
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.sysMu.Lock()
	defer r.sysMu.Unlock()

	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
