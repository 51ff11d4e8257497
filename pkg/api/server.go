// Package api serves protein network analyses over HTTP: a JSON endpoint,
// a GraphQL endpoint, Prometheus metrics and health probes.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dd0wney/ppinet/pkg/api/middleware"
	"github.com/dd0wney/ppinet/pkg/graphql"
	"github.com/dd0wney/ppinet/pkg/health"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/metrics"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/dd0wney/ppinet/pkg/server"
)

const defaultMaxBodyBytes = 1 << 20

// systemMetricsInterval is how often runtime gauges are refreshed
const systemMetricsInterval = 10 * time.Second

// NewServer creates a new API server around analyzer
func NewServer(analyzer *pipeline.Analyzer, opts ...Option) (*Server, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("api: analyzer is required")
	}

	s := &Server{
		analyzer:        analyzer,
		metricsRegistry: metrics.DefaultRegistry(),
		logger:          logging.NewNopLogger(),
		corsConfig:      middleware.DefaultCORSConfig(),
		graphqlLimits:   graphql.DefaultLimitConfig(),
		maxBodyBytes:    defaultMaxBodyBytes,
		startTime:       time.Now(),
		version:         "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.Component("api"))

	schema, err := graphql.GenerateSchema(analyzer, s.graphqlLimits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate GraphQL schema: %w", err)
	}
	s.graphqlHandler = graphql.NewGraphQLHandler(schema, s.graphqlDepth, s.logger)

	if s.healthChecker == nil {
		s.healthChecker = health.NewHealthChecker()
	}
	s.registerDefaultChecks()

	s.handler = s.buildHandler()
	return s, nil
}

func (s *Server) registerDefaultChecks() {
	s.healthChecker.RegisterLivenessCheck("api", health.AlwaysHealthy("api"))
	s.healthChecker.RegisterCheck("memory", health.MemoryCheck(health.RuntimeMemory))
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// HealthChecker returns the checker behind /health so callers can register
// source probes
func (s *Server) HealthChecker() *health.HealthChecker {
	return s.healthChecker
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
// reload, when non-nil, runs on SIGHUP.
func (s *Server) Start(ctx context.Context, addr string, timeouts server.Timeouts, reload server.ConfigReloadFunc) error {
	gs := server.NewGracefulServer(addr, s.handler, timeouts, s.logger)
	if reload != nil {
		gs.SetConfigReloadFunc(reload)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.updateMetricsPeriodically(ctx, systemMetricsInterval)

	s.logger.Info("ppinet API server starting",
		logging.String("addr", addr),
		logging.String("version", s.version),
		logging.Any("routes", Routes))
	return gs.Run(ctx)
}
