package api

import (
	"net/http"
	"time"

	"github.com/dd0wney/ppinet/pkg/api/middleware"
	"github.com/dd0wney/ppinet/pkg/graphql"
	"github.com/dd0wney/ppinet/pkg/health"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/metrics"
	"github.com/dd0wney/ppinet/pkg/pipeline"
)

// Route paths served by the API
const (
	RouteAnalyze = "/analyze"
	RouteSources = "/sources"
	RouteHealth  = "/health"
	RouteReady   = "/health/ready"
	RouteLive    = "/health/live"
	RouteMetrics = "/metrics"
	RouteGraphQL = "/graphql"
	RouteVersion = "/version"
)

// Routes lists every path the server registers
var Routes = []string{
	RouteAnalyze,
	RouteSources,
	RouteHealth,
	RouteReady,
	RouteLive,
	RouteMetrics,
	RouteGraphQL,
	RouteVersion,
}

// Server represents the HTTP API server
type Server struct {
	analyzer        *pipeline.Analyzer
	graphqlHandler  *graphql.GraphQLHandler
	metricsRegistry *metrics.Registry
	healthChecker   *health.HealthChecker
	logger          logging.Logger
	corsConfig      *middleware.CORSConfig
	graphqlLimits   *graphql.LimitConfig
	graphqlDepth    int
	analyzeTimeout  time.Duration
	maxBodyBytes    int64
	startTime       time.Time
	version         string
	handler         http.Handler
}
