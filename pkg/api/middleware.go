package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dd0wney/ppinet/pkg/api/middleware"
)

// buildHandler registers the routes and wraps them in the middleware chain.
// Recovery sits innermost so panics are still logged with the request ID
// and counted as 500s.
func (s *Server) buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(RouteAnalyze, s.handleAnalyze)
	mux.HandleFunc(RouteSources, s.handleSources)
	mux.HandleFunc(RouteVersion, s.handleVersion)
	mux.HandleFunc(RouteGraphQL, s.handleGraphQL)
	mux.Handle(RouteMetrics, s.metricsHandler())
	mux.Handle(RouteHealth, s.healthChecker.HTTPHandler())
	mux.Handle(RouteReady, s.healthChecker.ReadinessHandler())
	mux.Handle(RouteLive, s.healthChecker.LivenessHandler())

	var handler http.Handler = mux
	handler = middleware.PanicRecovery(s.logger)(handler)
	handler = middleware.Metrics(s.metricsRegistry, Routes)(handler)
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.CORS(s.corsConfig)(handler)
	handler = middleware.BodySizeLimit(s.maxBodyBytes)(handler)
	return handler
}

// updateMetricsPeriodically refreshes uptime and runtime gauges until ctx
// is done
func (s *Server) updateMetricsPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.metricsRegistry.UpdateSystemMetrics(s.startTime)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.metricsRegistry.UpdateSystemMetrics(s.startTime)
		}
	}
}
