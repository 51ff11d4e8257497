package graphql

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/network"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/graphql-go/graphql"
)

// setupSchema builds a schema over the demo data plus a disconnected
// network under STRING/SPLIT and a chain of n proteins under BioGRID/CHAIN.
func setupSchema(t *testing.T, limits *LimitConfig) graphql.Schema {
	t.Helper()

	fetcher := interactions.NewDemoFetcher()
	fetcher.Add(interactions.STRING, "SPLIT", network.EdgesFromPairs([][2]string{{"SPLIT", "B"}, {"C", "D"}}))

	chain := make([]network.Edge, 0, 50)
	for i := 0; i < 50; i++ {
		chain = append(chain, network.Edge{A: fmt.Sprintf("P%d", i), B: fmt.Sprintf("P%d", i+1)})
	}
	fetcher.Add(interactions.BioGRID, "CHAIN", chain)

	analyzer := pipeline.NewAnalyzer(fetcher, pipeline.WithoutLayout())
	schema, err := GenerateSchema(analyzer, limits)
	if err != nil {
		t.Fatalf("GenerateSchema() error = %v", err)
	}
	return schema
}

func execute(t *testing.T, schema graphql.Schema, query string) map[string]any {
	t.Helper()
	result := Execute(context.Background(), schema, GraphQLRequest{Query: query}, 0)
	if result.HasErrors() {
		t.Fatalf("Query failed: %v", result.Errors)
	}
	data, ok := result.Data.(map[string]any)
	if !ok {
		t.Fatalf("Unexpected data type %T", result.Data)
	}
	return data
}

func TestSchema_Sources(t *testing.T) {
	schema := setupSchema(t, nil)
	data := execute(t, schema, `{ sources metrics health }`)

	sources := data["sources"].([]any)
	if len(sources) != 2 || sources[0] != "BioGRID" || sources[1] != "STRING" {
		t.Errorf("sources = %v", sources)
	}
	if n := len(data["metrics"].([]any)); n != 5 {
		t.Errorf("Expected 5 metrics, got %d", n)
	}
	if data["health"] != "ok" {
		t.Errorf("health = %v", data["health"])
	}
}

func TestSchema_Analyze(t *testing.T) {
	schema := setupSchema(t, nil)
	data := execute(t, schema, `{
		analyze(proteinId: "BRCA1", source: "BioGRID") {
			proteinId
			source
			nodeCount
			edgeCount
			nodes { id degree degreeCentrality betweennessCentrality eigenvectorCentrality pageRank }
			metricErrors { metric message }
		}
	}`)

	analysis := data["analyze"].(map[string]any)
	if analysis["source"] != "BioGRID" {
		t.Errorf("source = %v", analysis["source"])
	}
	if analysis["nodeCount"] != 4 || analysis["edgeCount"] != 3 {
		t.Errorf("counts = %v/%v, want 4/3", analysis["nodeCount"], analysis["edgeCount"])
	}
	if errs := analysis["metricErrors"].([]any); len(errs) != 0 {
		t.Errorf("Unexpected metric errors: %v", errs)
	}

	nodes := analysis["nodes"].([]any)
	if len(nodes) != 4 {
		t.Fatalf("Expected 4 nodes, got %d", len(nodes))
	}
	hub := nodes[0].(map[string]any)
	if hub["id"] != "BRCA1" || hub["degree"] != 3 {
		t.Errorf("hub = %v", hub)
	}
	for _, field := range []string{"degreeCentrality", "betweennessCentrality"} {
		if v, _ := hub[field].(float64); math.Abs(v-1.0) > 1e-9 {
			t.Errorf("hub %s = %v, want 1", field, hub[field])
		}
	}
	if hub["eigenvectorCentrality"] == nil {
		t.Error("Expected eigenvector score on a connected network")
	}
}

func TestSchema_ClusteringAndPrimaryMetric(t *testing.T) {
	fetcher := interactions.NewFixtureFetcher()
	fetcher.Add(interactions.BioGRID, "A", network.EdgesFromPairs([][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"}}))
	schema, err := GenerateSchema(pipeline.NewAnalyzer(fetcher, pipeline.WithoutLayout()), nil)
	if err != nil {
		t.Fatalf("GenerateSchema() error = %v", err)
	}

	data := execute(t, schema, `{
		analyze(proteinId: "A", source: "BioGRID", metric: "closeness") {
			primaryMetric
			triangles
			nodes { id clustering }
		}
	}`)

	analysis := data["analyze"].(map[string]any)
	if analysis["primaryMetric"] != "Closeness Centrality" {
		t.Errorf("primaryMetric = %v", analysis["primaryMetric"])
	}
	if analysis["triangles"] != 1 {
		t.Errorf("triangles = %v, want 1", analysis["triangles"])
	}
	want := map[string]float64{"A": 1, "B": 1, "C": 1.0 / 3.0, "D": 0}
	for _, n := range analysis["nodes"].([]any) {
		node := n.(map[string]any)
		id := node["id"].(string)
		if v, _ := node["clustering"].(float64); math.Abs(v-want[id]) > 1e-9 {
			t.Errorf("clustering[%s] = %v, want %v", id, node["clustering"], want[id])
		}
	}
}

func TestSchema_AnalyzeReportsMetricErrors(t *testing.T) {
	schema := setupSchema(t, nil)
	data := execute(t, schema, `{
		analyze(proteinId: "SPLIT", source: "string") {
			nodes { id eigenvectorCentrality closenessCentrality }
			metricErrors { metric message }
		}
	}`)

	analysis := data["analyze"].(map[string]any)
	errs := analysis["metricErrors"].([]any)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 metric error, got %v", errs)
	}
	if errs[0].(map[string]any)["metric"] != "Eigenvector Centrality" {
		t.Errorf("metric error = %v", errs[0])
	}

	for _, n := range analysis["nodes"].([]any) {
		node := n.(map[string]any)
		if node["eigenvectorCentrality"] != nil {
			t.Errorf("Expected null eigenvector score for %v", node["id"])
		}
		if node["closenessCentrality"] == nil {
			t.Errorf("Expected closeness score for %v", node["id"])
		}
	}
}

func TestSchema_TopNodes(t *testing.T) {
	schema := setupSchema(t, nil)
	data := execute(t, schema, `{
		analyze(proteinId: "BRCA1", source: "STRING") {
			topNodes(metric: "pagerank", limit: 2) { protein score }
		}
	}`)

	top := data["analyze"].(map[string]any)["topNodes"].([]any)
	if len(top) != 2 {
		t.Fatalf("Expected 2 ranked proteins, got %d", len(top))
	}
	if top[0].(map[string]any)["protein"] != "BRCA1" {
		t.Errorf("Expected BRCA1 first, got %v", top[0])
	}
}

func TestSchema_TopNodesUnknownMetric(t *testing.T) {
	schema := setupSchema(t, nil)
	result := Execute(context.Background(), schema, GraphQLRequest{Query: `{
		analyze(proteinId: "BRCA1", source: "BioGRID") { topNodes(metric: "katz") { protein } }
	}`}, 0)

	if !result.HasErrors() {
		t.Fatal("Expected an error for an unknown metric")
	}
}

func TestSchema_AnalyzeErrors(t *testing.T) {
	schema := setupSchema(t, nil)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no interactions", `{ analyze(proteinId: "TP53", source: "BioGRID") { nodeCount } }`, "no interactions"},
		{"unknown source", `{ analyze(proteinId: "BRCA1", source: "IntAct") { nodeCount } }`, "unknown interaction source"},
		{"invalid protein", `{ analyze(proteinId: "BR CA1", source: "BioGRID") { nodeCount } }`, "invalid analysis request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Execute(context.Background(), schema, GraphQLRequest{Query: tt.query}, 0)
			if !result.HasErrors() {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(result.Errors[0].Message, tt.want) {
				t.Errorf("error = %q, want substring %q", result.Errors[0].Message, tt.want)
			}
		})
	}
}

func TestSchema_Variables(t *testing.T) {
	schema := setupSchema(t, nil)
	result := Execute(context.Background(), schema, GraphQLRequest{
		Query:     `query Analyze($id: String!, $src: String!) { analyze(proteinId: $id, source: $src) { proteinId } }`,
		Variables: map[string]any{"id": "BRCA1", "src": "STRING"},
	}, 0)
	if result.HasErrors() {
		t.Fatalf("Query failed: %v", result.Errors)
	}
	analysis := result.Data.(map[string]any)["analyze"].(map[string]any)
	if analysis["proteinId"] != "BRCA1" {
		t.Errorf("proteinId = %v", analysis["proteinId"])
	}
}
