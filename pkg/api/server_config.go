package api

import (
	"time"

	"github.com/dd0wney/ppinet/pkg/api/middleware"
	"github.com/dd0wney/ppinet/pkg/graphql"
	"github.com/dd0wney/ppinet/pkg/health"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/metrics"
)

// Option configures a Server
type Option func(*Server)

// WithLogger sets the structured logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the registry served on /metrics and fed by the HTTP
// middleware
func WithMetrics(registry *metrics.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.metricsRegistry = registry
		}
	}
}

// WithHealthChecker replaces the default health checker
func WithHealthChecker(hc *health.HealthChecker) Option {
	return func(s *Server) {
		if hc != nil {
			s.healthChecker = hc
		}
	}
}

// WithCORS sets the CORS configuration
func WithCORS(cfg *middleware.CORSConfig) Option {
	return func(s *Server) { s.corsConfig = cfg }
}

// WithGraphQL sets the list limits and the maximum query depth of the
// GraphQL endpoint
func WithGraphQL(limits *graphql.LimitConfig, maxDepth int) Option {
	return func(s *Server) {
		s.graphqlLimits = limits
		s.graphqlDepth = maxDepth
	}
}

// WithAnalyzeTimeout bounds every analysis started by a request. Zero means
// the request context alone applies.
func WithAnalyzeTimeout(d time.Duration) Option {
	return func(s *Server) { s.analyzeTimeout = d }
}

// WithMaxBodyBytes caps request bodies
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithVersion sets the version reported by /version
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// withClock is used by tests to pin the start time
func withClock(start time.Time) Option {
	return func(s *Server) { s.startTime = start }
}
