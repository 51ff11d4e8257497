package interactions

import (
	"context"
	"strings"
	"testing"

	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFetcher_TSVWithHeader(t *testing.T) {
	f := NewFileFetcher("testdata")

	edges, err := f.FetchInteractions(context.Background(), "TP53", STRING)
	require.NoError(t, err)
	assert.Equal(t, network.EdgesFromPairs([][2]string{
		{"TP53", "MDM2"}, {"TP53", "ATM"}, {"TP53", "CHEK2"},
	}), edges)
}

func TestFileFetcher_CSV(t *testing.T) {
	edges, err := NewFileFetcher("testdata").FetchInteractions(context.Background(), "EGFR", BioGRID)
	require.NoError(t, err)
	assert.Len(t, edges, 4)
	assert.Equal(t, network.Edge{A: "EGFR", B: "GRB2"}, edges[0])
}

func TestFileFetcher_MissingFile(t *testing.T) {
	edges, err := NewFileFetcher("testdata").FetchInteractions(context.Background(), "UNKNOWN", BioGRID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestFileFetcher_EmptyFile(t *testing.T) {
	edges, err := NewFileFetcher("testdata").FetchInteractions(context.Background(), "EMPTY", BioGRID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestFileFetcher_MalformedFile(t *testing.T) {
	_, err := NewFileFetcher("testdata").FetchInteractions(context.Background(), "BROKEN", BioGRID)

	var upstream *UpstreamFetchError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, BioGRID, upstream.Source)
	assert.Contains(t, err.Error(), "expected two protein identifiers")
}

func TestFileFetcher_RejectsPathTraversal(t *testing.T) {
	_, err := NewFileFetcher("testdata").FetchInteractions(context.Background(), "../bundle", BioGRID)
	assert.Error(t, err)
}

func TestParseEdgeList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		delim   rune
		want    int
		wantErr bool
	}{
		{"plain", "A,B\nB,C\n", ',', 2, false},
		{"header skipped", "ProteinA,ProteinB\nA,B\n", ',', 1, false},
		{"comments and blanks", "# note\nA\tB\n\nC\tD\n", '\t', 2, false},
		{"extra columns", "A,B,0.9,exp\n", ',', 1, false},
		{"single column", "A\n", ',', 0, true},
		{"empty", "", ',', 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, err := ParseEdgeList(strings.NewReader(tt.input), tt.delim)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, edges, tt.want)
		})
	}
}

func TestParseEdgeList_HeaderOnlyOnFirstLine(t *testing.T) {
	edges, err := ParseEdgeList(strings.NewReader("A,B\nProteinA,ProteinB\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, network.Edge{A: "ProteinA", B: "ProteinB"}, edges[1])
}
