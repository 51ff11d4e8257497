package logging

import "time"

func String(key, value string) Field          { return Field{Key: key, Value: value} }
func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Any(key string, value any) Field         { return Field{Key: key, Value: value} }

// Duration renders d in time.Duration's text form, e.g. "1.5s".
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// Error stores err's message under "error"; a nil error becomes null.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Keys shared by the analysis pipeline, the fetchers and the HTTP layer.
const (
	KeyComponent  = "component"
	KeyProtein    = "protein"
	KeySource     = "source"
	KeyMetric     = "metric"
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyNodes      = "nodes"
	KeyEdges      = "edges"
	KeyIterations = "iterations"
	KeyLatency    = "latency"
	KeyCount      = "count"
	KeyPath       = "path"
)

func Component(name string) Field { return String(KeyComponent, name) }

// Protein identifies the queried protein.
func Protein(id string) Field { return String(KeyProtein, id) }

// Source names the interaction database.
func Source(name string) Field { return String(KeySource, name) }

func Metric(name string) Field { return String(KeyMetric, name) }

// RunID ties all log lines of one analysis together.
func RunID(id string) Field { return String(KeyRunID, id) }

func Stage(name string) Field       { return String(KeyStage, name) }
func Nodes(n int) Field             { return Int(KeyNodes, n) }
func Edges(n int) Field             { return Int(KeyEdges, n) }
func Iterations(n int) Field        { return Int(KeyIterations, n) }
func Latency(d time.Duration) Field { return Duration(KeyLatency, d) }
func Count(n int) Field             { return Int(KeyCount, n) }
func Path(p string) Field           { return String(KeyPath, p) }
