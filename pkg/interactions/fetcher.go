package interactions

import (
	"context"
	"fmt"

	"github.com/dd0wney/ppinet/pkg/network"
)

// Fetcher retrieves the interaction list around a protein from one database.
// An identifier with no known interactions yields an empty list and no error.
type Fetcher interface {
	FetchInteractions(ctx context.Context, identifier string, source Source) ([]network.Edge, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, identifier string, source Source) ([]network.Edge, error)

func (f FetcherFunc) FetchInteractions(ctx context.Context, identifier string, source Source) ([]network.Edge, error) {
	return f(ctx, identifier, source)
}

// UpstreamFetchError reports that an interaction source could not be read.
type UpstreamFetchError struct {
	Source     Source
	Identifier string
	Cause      error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("fetch interactions for %q from %s: %v", e.Identifier, e.Source, e.Cause)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Cause
}

func upstreamError(source Source, identifier string, cause error) error {
	return &UpstreamFetchError{Source: source, Identifier: identifier, Cause: cause}
}

// Chain returns a Fetcher that asks each fetcher in turn and returns the
// first non-empty list. Errors stop the chain.
func Chain(fetchers ...Fetcher) Fetcher {
	return FetcherFunc(func(ctx context.Context, identifier string, source Source) ([]network.Edge, error) {
		for _, f := range fetchers {
			edges, err := f.FetchInteractions(ctx, identifier, source)
			if err != nil {
				return nil, err
			}
			if len(edges) > 0 {
				return edges, nil
			}
		}
		return []network.Edge{}, nil
	})
}
