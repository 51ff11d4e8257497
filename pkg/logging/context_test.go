package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestDomainFields(t *testing.T) {
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{Protein("BRCA1"), "protein", "BRCA1"},
		{Source("BioGRID"), "source", "BioGRID"},
		{Metric("PageRank"), "metric", "PageRank"},
		{RunID("abc"), "run_id", "abc"},
		{Stage("fetch"), "stage", "fetch"},
		{Nodes(4), "nodes", 4},
		{Edges(3), "edges", 3},
		{Iterations(77), "iterations", 77},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("field = %+v, want {%s %v}", tt.field, tt.key, tt.value)
			}
		})
	}
}

func TestFromContext_CarriesLoggerAndRunID(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), NewJSONLogger(&buf, InfoLevel))
	ctx = WithRunID(ctx, "run-42")

	FromContext(ctx).Info("analysis started")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["run_id"] != "run-42" {
		t.Errorf("run_id field = %v, want run-42", entry.Fields["run_id"])
	}
}

func TestRunIDFromContext(t *testing.T) {
	if _, ok := RunIDFromContext(context.Background()); ok {
		t.Error("Expected no run ID on a bare context")
	}
	if _, ok := RunIDFromContext(WithRunID(context.Background(), "")); ok {
		t.Error("Expected empty run ID to be reported as missing")
	}
	id, ok := RunIDFromContext(WithRunID(context.Background(), "x"))
	if !ok || id != "x" {
		t.Errorf("RunIDFromContext = %q, %v", id, ok)
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, InfoLevel))
	t.Cleanup(func() { SetDefaultLogger(nil) })

	FromContext(context.Background()).Info("fallback")

	if buf.Len() == 0 {
		t.Error("Expected the default logger to receive the entry")
	}
}
