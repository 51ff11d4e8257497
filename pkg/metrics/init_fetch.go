package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initFetchMetrics() {
	factory := promauto.With(r.registry)

	r.FetchesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetches_total",
		Help:      "Interaction fetches by source and outcome",
	}, []string{"source", "status"})

	r.FetchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Interaction fetch latency by source",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	r.InteractionsFetched = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interactions_fetched_total",
		Help:      "Interaction pairs returned by each source",
	}, []string{"source"})
}
