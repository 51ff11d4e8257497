package report

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func analyze(t *testing.T, edges [][2]string) *pipeline.Report {
	return analyzeBy(t, edges, "")
}

func analyzeBy(t *testing.T, edges [][2]string, metric string) *pipeline.Report {
	t.Helper()
	fetcher := interactions.NewFixtureFetcher()
	fetcher.Add(interactions.BioGRID, "BRCA1", network.EdgesFromPairs(edges))

	a := pipeline.NewAnalyzer(fetcher, pipeline.WithIDGenerator(func() string { return "run-1" }))
	r, err := a.Analyze(context.Background(), pipeline.Request{ProteinID: "BRCA1", Source: "BioGRID", Metric: metric})
	require.NoError(t, err)
	return r
}

func starReport(t *testing.T) *pipeline.Report {
	return analyze(t, [][2]string{{"BRCA1", "TP53"}, {"BRCA1", "EGFR"}, {"BRCA1", "MYC"}})
}

// Two separate pairs: eigenvector centrality fails
func disconnectedReport(t *testing.T) *pipeline.Report {
	return analyze(t, [][2]string{{"BRCA1", "TP53"}, {"EGFR", "MYC"}})
}

func TestRows_Star(t *testing.T) {
	header, rows := Rows(starReport(t), TableOptions{Precision: 3})

	assert.Equal(t, []string{"Metric", "BRCA1", "TP53", "EGFR", "MYC"}, header)
	require.Len(t, rows, len(algorithms.AllMetrics))
	for i, m := range algorithms.AllMetrics {
		assert.Equal(t, string(m), rows[i][0])
	}
	assert.Equal(t, []string{"Degree Centrality", "1.000", "0.333", "0.333", "0.333"}, rows[0])
	assert.Equal(t, "1.000", rows[1][1], "BRCA1 betweenness")
}

func TestRows_FailedMetric(t *testing.T) {
	_, rows := Rows(disconnectedReport(t), TableOptions{})

	require.Len(t, rows, len(algorithms.AllMetrics))
	eigen := rows[3]
	assert.Equal(t, string(algorithms.MetricEigenvector), eigen[0])
	for _, v := range eigen[1:] {
		assert.Equal(t, NotAvailable, v)
	}
	assert.Equal(t, "0.3333", rows[0][1])
}

func TestRows_ProteinSubset(t *testing.T) {
	header, rows := Rows(starReport(t), TableOptions{Proteins: []string{"MYC"}})
	assert.Equal(t, []string{"Metric", "MYC"}, header)
	assert.Len(t, rows[0], 2)
}

// Two triangles joined through X: C has the most interactions, X bridges
// every path between the triangles.
var bridgedTriangles = [][2]string{
	{"A", "B"}, {"B", "C"}, {"C", "A"},
	{"C", "X"}, {"X", "D"},
	{"D", "E"}, {"E", "F"}, {"F", "D"},
}

func TestRows_OrderedByPrimaryMetric(t *testing.T) {
	byDegree, _ := Rows(analyzeBy(t, bridgedTriangles, "degree"), TableOptions{})
	byBetweenness, _ := Rows(analyzeBy(t, bridgedTriangles, "betweenness"), TableOptions{})

	assert.Equal(t, "C", byDegree[1])
	assert.Equal(t, "X", byBetweenness[1])
	assert.NotEqual(t, byDegree, byBetweenness)
	assert.ElementsMatch(t, byDegree, byBetweenness)
}

func TestSummary_PrimaryMetric(t *testing.T) {
	assert.Contains(t, Summary(starReport(t)), "Ranked by: Degree Centrality")
	assert.Contains(t, Summary(analyzeBy(t, bridgedTriangles, "pagerank")), "Ranked by: PageRank")
}

func TestWriteTable_Legend(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, starReport(t), TableOptions{}))

	out := buf.String()
	for _, m := range algorithms.AllMetrics {
		assert.Contains(t, out, string(m)+": "+m.Description())
	}
	assert.Greater(t, strings.LastIndex(out, "PageRank: "), strings.LastIndex(out, "1.0000"))
}

func TestTable_Render(t *testing.T) {
	out := Table(starReport(t), TableOptions{})

	for _, want := range []string{"Metric", "BRCA1", "MYC", "PageRank", "Closeness Centrality", "1.0000"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteTable_ReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, disconnectedReport(t), TableOptions{}))

	out := buf.String()
	assert.Contains(t, out, "BRCA1 (BioGRID)")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Error computing Eigenvector Centrality")
	assert.Contains(t, out, NotAvailable)
}

func TestXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, disconnectedReport(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetCentrality, SheetInteractions, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetCentrality)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(algorithms.AllMetrics))
	assert.Equal(t, []string{"Metric", "BRCA1", "TP53", "EGFR", "MYC"}, rows[0])
	assert.Equal(t, string(algorithms.MetricEigenvector), rows[4][0])
	assert.Equal(t, NotAvailable, rows[4][1])

	degree, err := f.GetCellValue(SheetCentrality, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(degree, "0.333"), "got %s", degree)

	pairs, err := f.GetRows(SheetInteractions)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ProteinA", "ProteinB"}, {"BRCA1", "TP53"}, {"EGFR", "MYC"}}, pairs)

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Run", "run-1"}, summary[0])
	assert.Equal(t, "Error: Eigenvector Centrality", summary[len(summary)-1][0])
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brca1.xlsx")
	require.NoError(t, SaveXLSX(path, starReport(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetInteractions)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestJSON_PrettyAndCompressed(t *testing.T) {
	r := starReport(t)

	plain, err := MarshalJSON(r, JSONOptions{})
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "\n  ")

	indented, err := MarshalJSON(r, JSONOptions{Pretty: true})
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n  \"run_id\": \"run-1\"")

	compressed, err := MarshalJSON(r, JSONOptions{Compress: true})
	require.NoError(t, err)
	assert.NotEqual(t, plain, compressed)

	decoded, err := UnmarshalJSON(compressed, true)
	require.NoError(t, err)
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, interactions.BioGRID, decoded.Source)
	assert.Equal(t, r.Interactions, decoded.Interactions)
	assert.InDelta(t, 1.0, decoded.Centralities[string(algorithms.MetricDegree)]["BRCA1"], 1e-12)
	assert.Equal(t, r.Proteins(), decoded.Proteins())
}

func TestJSON_MetricErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, disconnectedReport(t), JSONOptions{}))

	decoded, err := UnmarshalJSON(buf.Bytes(), false)
	require.NoError(t, err)
	assert.Contains(t, decoded.MetricErrors, string(algorithms.MetricEigenvector))
	assert.NotContains(t, decoded.Centralities, string(algorithms.MetricEigenvector))
}

func TestUnmarshalJSON_Corrupt(t *testing.T) {
	_, err := UnmarshalJSON([]byte("not snappy"), true)
	assert.Error(t, err)

	_, err = UnmarshalJSON([]byte("{"), false)
	assert.Error(t, err)
}
