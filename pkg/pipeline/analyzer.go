// Package pipeline runs the fetch, build, compute and layout cycle that turns
// a protein identifier into a centrality report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/metrics"
	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/dd0wney/ppinet/pkg/validation"
	"github.com/dd0wney/ppinet/pkg/visualization"
	"github.com/google/uuid"
)

// ErrInvalidRequest wraps every request validation failure
var ErrInvalidRequest = errors.New("invalid analysis request")

// Request asks for the network around one protein in one database.
type Request struct {
	ProteinID string `json:"protein_id"`
	Source    string `json:"source"`
	Layout    string `json:"layout,omitempty"`
	Metric    string `json:"metric,omitempty"`
}

// Analyzer runs analyses against an interaction source. It is safe for
// concurrent use; every run owns its graph and result.
type Analyzer struct {
	fetcher      interactions.Fetcher
	logger       logging.Logger
	metrics      *metrics.Registry
	options      algorithms.Options
	layout       visualization.LayoutKind
	layoutConfig *visualization.LayoutConfig
	skipLayout   bool
	newID        func() string
	now          func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger. Per-run fields are added on top of it.
func WithLogger(logger logging.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics enables Prometheus recording
func WithMetrics(registry *metrics.Registry) Option {
	return func(a *Analyzer) { a.metrics = registry }
}

// WithOptions overrides the centrality settings
func WithOptions(opts algorithms.Options) Option {
	return func(a *Analyzer) { a.options = opts }
}

// WithLayout sets the layout used when a request names none.
func WithLayout(kind visualization.LayoutKind, config *visualization.LayoutConfig) Option {
	return func(a *Analyzer) {
		if kind != "" {
			a.layout = kind
		}
		a.layoutConfig = config
	}
}

// WithoutLayout skips the layout stage; reports then carry no positions.
func WithoutLayout() Option {
	return func(a *Analyzer) { a.skipLayout = true }
}

// WithIDGenerator replaces the UUID run ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(a *Analyzer) { a.newID = fn }
}

// NewAnalyzer creates an analyzer reading interactions from fetcher.
func NewAnalyzer(fetcher interactions.Fetcher, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher: fetcher,
		logger:  logging.NewNopLogger(),
		options: algorithms.DefaultOptions(),
		layout:  visualization.LayoutSpring,
		newID:   func() string { return uuid.New().String() },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logging.Component("pipeline"))
	a.fetcher = interactions.Instrument(a.fetcher, a.logger, a.metrics)
	return a
}

// Analyze fetches the interactions of req.ProteinID from req.Source, builds
// the network, computes all five centralities and lays the network out.
//
// Errors:
//   - ErrInvalidRequest for a malformed protein ID, source or layout
//   - *interactions.UpstreamFetchError when the source fails
//   - network.ErrEmptyNetwork when the protein has no interactions
//   - *network.ValidationError when the source returned a malformed pair
//
// Metric failures are not errors: they are listed in Report.MetricErrors.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Report, error) {
	start := a.now()
	runID := a.newID()
	ctx = logging.WithRunID(logging.WithLogger(ctx, a.logger), runID)
	logger := logging.FromContext(ctx).With(logging.Protein(req.ProteinID), logging.Source(req.Source))

	if a.metrics != nil {
		a.metrics.AnalysesInFlight.Inc()
		defer a.metrics.AnalysesInFlight.Dec()
	}

	source, layout, metric, err := a.validate(req)
	if err != nil {
		logger.Warn("rejected analysis request", logging.Stage(StageValidate), logging.Error(err))
		a.recordOutcome("", metrics.StatusInvalid, start, nil)
		return nil, err
	}

	report := newReport(runID, req.ProteinID, source, metric, start)
	logger.Info("analysis started", logging.Metric(string(metric)))

	stageStart := a.now()
	edges, err := a.fetcher.FetchInteractions(ctx, req.ProteinID, source)
	a.finishStage(report, StageFetch, stageStart)
	if err != nil {
		a.recordOutcome(source.String(), metrics.StatusUpstream, start, nil)
		var upstream *interactions.UpstreamFetchError
		if errors.As(err, &upstream) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &interactions.UpstreamFetchError{Source: source, Identifier: req.ProteinID, Cause: err}
	}
	if len(edges) == 0 {
		logger.Warn("no data found")
		a.recordOutcome(source.String(), metrics.StatusEmpty, start, nil)
		return nil, fmt.Errorf("%w: no interactions for %s in %s", network.ErrEmptyNetwork, req.ProteinID, source)
	}

	report, err = a.run(ctx, report, edges, layout)
	if err != nil {
		status := metrics.StatusError
		if errors.Is(err, network.ErrEmptyNetwork) {
			status = metrics.StatusEmpty
		}
		logger.Error("analysis failed", logging.Error(err))
		a.recordOutcome(source.String(), status, start, nil)
		return nil, err
	}

	a.recordOutcome(source.String(), metrics.StatusSuccess, start, report)
	logger.Info("analysis completed",
		logging.Nodes(report.Statistics.NodeCount),
		logging.Edges(report.Statistics.EdgeCount),
		logging.Count(len(report.MetricErrors)),
		logging.Latency(a.now().Sub(start)))
	return report, nil
}

// AnalyzeEdges runs the build, compute and layout stages over an interaction
// list the caller already holds, such as a local edge-list file. label names
// the network in the report; metric picks the primary metric as in
// Request.Metric.
func (a *Analyzer) AnalyzeEdges(ctx context.Context, label string, source interactions.Source, metric string, edges []network.Edge) (*Report, error) {
	start := a.now()
	runID := a.newID()
	ctx = logging.WithRunID(logging.WithLogger(ctx, a.logger), runID)

	primary, err := parsePrimaryMetric(metric)
	if err != nil {
		a.recordOutcome("", metrics.StatusInvalid, start, nil)
		return nil, err
	}

	report := newReport(runID, label, source, primary, start)
	report, err = a.run(ctx, report, edges, a.layout)
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		if errors.Is(err, network.ErrEmptyNetwork) {
			status = metrics.StatusEmpty
		}
	}
	a.recordOutcome(source.String(), status, start, report)
	return report, err
}

func (a *Analyzer) validate(req Request) (interactions.Source, visualization.LayoutKind, algorithms.Metric, error) {
	if err := validation.ValidateAnalyzeRequest(&validation.AnalyzeRequest{
		ProteinID: req.ProteinID,
		Source:    req.Source,
		Layout:    req.Layout,
		Metric:    req.Metric,
	}); err != nil {
		return "", "", "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	source, err := interactions.ParseSource(req.Source)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	metric, err := parsePrimaryMetric(req.Metric)
	if err != nil {
		return "", "", "", err
	}

	layout := a.layout
	if req.Layout != "" {
		if layout, err = visualization.ParseLayoutKind(req.Layout); err != nil {
			return "", "", "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	return source, layout, metric, nil
}

// parsePrimaryMetric resolves the metric a report is ranked by. An empty
// name selects degree centrality.
func parsePrimaryMetric(name string) (algorithms.Metric, error) {
	if name == "" {
		return algorithms.MetricDegree, nil
	}
	metric, err := algorithms.ParseMetric(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return metric, nil
}

func (a *Analyzer) run(ctx context.Context, report *Report, edges []network.Edge, layout visualization.LayoutKind) (*Report, error) {
	logger := logging.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart := a.now()
	graph, err := network.BuildNetwork(edges)
	a.finishStage(report, StageBuild, stageStart)
	if err != nil {
		return nil, fmt.Errorf("failed to build network: %w", err)
	}
	if graph.IsEmpty() {
		return nil, network.ErrEmptyNetwork
	}
	report.Graph = graph
	report.Interactions = graph.Edges()
	report.Statistics = graph.GetStatistics()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = a.now()
	result, err := algorithms.CalculateCentralitiesWithOptions(graph, a.options)
	if err != nil {
		return nil, fmt.Errorf("failed to compute centralities: %w", err)
	}
	triangles, err := algorithms.CountTriangles(graph)
	if err != nil {
		return nil, fmt.Errorf("failed to count triangles: %w", err)
	}
	a.finishStage(report, StageCompute, stageStart)

	report.setCentralities(result)
	report.Triangles = triangles.GlobalCount
	report.AverageClustering = triangles.AverageClustering
	report.Clustering = triangles.ClusteringCoefficients

	for metric, merr := range result.Errors {
		logger.Warn("centrality metric failed", logging.Metric(string(metric)), logging.Error(merr))
		if a.metrics != nil {
			a.metrics.RecordMetricFailure(metric.Short())
		}
	}
	if a.metrics != nil {
		for metric, n := range result.Iterations {
			a.metrics.RecordIterations(metric.Short(), n)
		}
	}

	if a.skipLayout {
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = a.now()
	viz, err := visualization.New(graph, layout, a.layoutConfig)
	a.finishStage(report, StageLayout, stageStart)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out network: %w", err)
	}
	viz.WithScores(report.Centralities)
	data := viz.Data()
	report.Visualization = viz
	report.Layout = &data

	return report, nil
}

func (a *Analyzer) finishStage(report *Report, stage string, started time.Time) {
	elapsed := a.now().Sub(started)
	report.setTiming(stage, elapsed)
	if a.metrics != nil {
		a.metrics.RecordStage(stage, elapsed)
	}
}

func (a *Analyzer) recordOutcome(source, status string, started time.Time, report *Report) {
	if a.metrics == nil {
		return
	}
	if source == "" {
		source = "unknown"
	}
	nodes, edges := 0, 0
	if report != nil {
		nodes, edges = report.Statistics.NodeCount, report.Statistics.EdgeCount
	}
	a.metrics.RecordAnalysis(source, status, a.now().Sub(started), nodes, edges)
}
