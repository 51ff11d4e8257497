package interactions

import (
	"context"
	"time"

	"github.com/dd0wney/ppinet/pkg/logging"
	"github.com/dd0wney/ppinet/pkg/metrics"
	"github.com/dd0wney/ppinet/pkg/network"
)

// InstrumentedFetcher records fetch metrics and logs around another Fetcher.
type InstrumentedFetcher struct {
	next    Fetcher
	logger  logging.Logger
	metrics *metrics.Registry
}

// Instrument wraps next. A nil logger discards output and a nil registry
// disables metrics.
func Instrument(next Fetcher, logger logging.Logger, registry *metrics.Registry) *InstrumentedFetcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &InstrumentedFetcher{
		next:    next,
		logger:  logger.With(logging.Component("interactions")),
		metrics: registry,
	}
}

func (f *InstrumentedFetcher) FetchInteractions(ctx context.Context, identifier string, source Source) ([]network.Edge, error) {
	start := time.Now()
	edges, err := f.next.FetchInteractions(ctx, identifier, source)
	elapsed := time.Since(start)

	fields := []logging.Field{
		logging.Protein(identifier),
		logging.Source(source.String()),
		logging.Latency(elapsed),
	}

	status := metrics.StatusSuccess
	switch {
	case err != nil:
		status = metrics.StatusUpstream
		f.logger.Error("interaction fetch failed", append(fields, logging.Error(err))...)
	case len(edges) == 0:
		status = metrics.StatusEmpty
		f.logger.Warn("no interactions found", fields...)
	default:
		f.logger.Debug("interactions fetched", append(fields, logging.Count(len(edges)))...)
	}

	if f.metrics != nil {
		f.metrics.RecordFetch(source.String(), status, elapsed, len(edges))
	}
	return edges, err
}
