package interactions

import (
	"context"
	"errors"
	"testing"

	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoFetcher(t *testing.T) {
	f := NewDemoFetcher()
	ctx := context.Background()

	biogrid, err := f.FetchInteractions(ctx, "BRCA1", BioGRID)
	require.NoError(t, err)
	assert.Equal(t, network.EdgesFromPairs([][2]string{
		{"BRCA1", "TP53"}, {"BRCA1", "EGFR"}, {"BRCA1", "MYC"},
	}), biogrid)

	str, err := f.FetchInteractions(ctx, "brca1", STRING)
	require.NoError(t, err)
	assert.Equal(t, network.EdgesFromPairs([][2]string{
		{"BRCA1", "MDM2"}, {"BRCA1", "AKT1"}, {"BRCA1", "ATM"},
	}), str)

	unknown, err := f.FetchInteractions(ctx, "NOPE1", BioGRID)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.NotNil(t, unknown)
}

func TestFixtureFetcher_ReturnsCopies(t *testing.T) {
	f := NewDemoFetcher()

	edges, err := f.FetchInteractions(context.Background(), "BRCA1", BioGRID)
	require.NoError(t, err)
	edges[0].B = "MUTATED"

	again, err := f.FetchInteractions(context.Background(), "BRCA1", BioGRID)
	require.NoError(t, err)
	assert.Equal(t, "TP53", again[0].B)
}

func TestFixtureFetcher_Default(t *testing.T) {
	f := NewFixtureFetcher()
	f.SetDefault(STRING, network.EdgesFromPairs([][2]string{{"A", "B"}}))

	edges, err := f.FetchInteractions(context.Background(), "ANY", STRING)
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	edges, err = f.FetchInteractions(context.Background(), "ANY", BioGRID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestFixtureFetcher_UnknownSource(t *testing.T) {
	_, err := NewDemoFetcher().FetchInteractions(context.Background(), "BRCA1", Source("IntAct"))

	var upstream *UpstreamFetchError
	require.ErrorAs(t, err, &upstream)
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.Equal(t, "BRCA1", upstream.Identifier)
}

func TestFixtureFetcher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDemoFetcher().FetchInteractions(ctx, "BRCA1", BioGRID)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadBundleFile(t *testing.T) {
	f, err := LoadBundleFile("testdata/bundle.yaml")
	require.NoError(t, err)

	ctx := context.Background()
	tp53, err := f.FetchInteractions(ctx, "TP53", BioGRID)
	require.NoError(t, err)
	assert.Equal(t, []network.Edge{{A: "TP53", B: "MDM2"}}, tp53)

	// Lower-case source names resolve, and defaults apply to any protein
	fallback, err := f.FetchInteractions(ctx, "XYZ", STRING)
	require.NoError(t, err)
	assert.Len(t, fallback, 3)

	assert.ElementsMatch(t, []string{"BRCA1", "TP53"}, f.Identifiers(BioGRID))
}

func TestParseBundle_Errors(t *testing.T) {
	_, err := ParseBundle([]byte("sources: [unclosed"))
	assert.Error(t, err)

	_, err = ParseBundle([]byte("unexpected: true\n"))
	assert.Error(t, err, "unknown top-level keys are rejected")

	b, err := ParseBundle(nil)
	require.NoError(t, err)
	assert.Empty(t, b.Sources)

	b, err = ParseBundle([]byte("sources:\n  IntAct:\n    default: []\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, NewFixtureFetcher().Load(b), ErrUnknownSource)
}

func TestFixtureFetcher_BundleRoundTrip(t *testing.T) {
	bundle := NewDemoFetcher().Bundle()
	require.Contains(t, bundle.Sources, "BioGRID")

	f := NewFixtureFetcher()
	require.NoError(t, f.Load(bundle))

	edges, err := f.FetchInteractions(context.Background(), "BRCA1", STRING)
	require.NoError(t, err)
	assert.Len(t, edges, 3)
}

func TestChain(t *testing.T) {
	empty := NewFixtureFetcher()
	demo := NewDemoFetcher()

	edges, err := Chain(empty, demo).FetchInteractions(context.Background(), "BRCA1", BioGRID)
	require.NoError(t, err)
	assert.Len(t, edges, 3)

	failing := FetcherFunc(func(ctx context.Context, id string, s Source) ([]network.Edge, error) {
		return nil, upstreamError(s, id, errors.New("connection refused"))
	})
	_, err = Chain(failing, demo).FetchInteractions(context.Background(), "BRCA1", BioGRID)
	assert.Error(t, err)

	none, err := Chain(empty).FetchInteractions(context.Background(), "BRCA1", BioGRID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
