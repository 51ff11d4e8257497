package visualization

import (
	"encoding/json"
	"fmt"

	"github.com/dd0wney/ppinet/pkg/network"
)

// Visualization represents a protein network with a computed layout and
// optional per-protein scores keyed by metric name.
type Visualization struct {
	Graph     *network.Graph
	Layout    LayoutKind
	Positions map[string]Position
	Scores    map[string]map[string]float64
}

// NodeViz is one positioned protein in the exported picture
type NodeViz struct {
	ID     string             `json:"id"`
	X      float64            `json:"x"`
	Y      float64            `json:"y"`
	Degree int                `json:"degree"`
	Scores map[string]float64 `json:"scores,omitempty"`
}

// EdgeViz is one interaction in the exported picture
type EdgeViz struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// VizData is the JSON form of a Visualization
type VizData struct {
	Layout LayoutKind `json:"layout"`
	Nodes  []NodeViz  `json:"nodes"`
	Edges  []EdgeViz  `json:"edges"`
}

// New lays out g with the named layout.
func New(g *network.Graph, kind LayoutKind, config *LayoutConfig) (*Visualization, error) {
	if g == nil {
		return nil, fmt.Errorf("visualization: nil graph")
	}
	layout, err := NewLayout(kind, config)
	if err != nil {
		return nil, err
	}
	positions, err := layout.ComputeLayout(g)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s layout: %w", kind, err)
	}
	if kind == "" {
		kind = LayoutSpring
	}
	return &Visualization{
		Graph:     g,
		Layout:    kind,
		Positions: positions,
	}, nil
}

// WithScores attaches metric scores shown in exports and node labels.
func (v *Visualization) WithScores(scores map[string]map[string]float64) *Visualization {
	v.Scores = scores
	return v
}

// Data returns the exported form, nodes and edges in first-appearance order.
func (v *Visualization) Data() VizData {
	nodes := v.Graph.Nodes()
	edges := v.Graph.Edges()

	data := VizData{
		Layout: v.Layout,
		Nodes:  make([]NodeViz, 0, len(nodes)),
		Edges:  make([]EdgeViz, 0, len(edges)),
	}

	for _, id := range nodes {
		pos := v.Positions[id]
		node := NodeViz{
			ID:     id,
			X:      pos.X,
			Y:      pos.Y,
			Degree: v.Graph.Degree(id),
		}
		if len(v.Scores) > 0 {
			node.Scores = make(map[string]float64, len(v.Scores))
			for metric, scores := range v.Scores {
				if s, ok := scores[id]; ok {
					node.Scores[metric] = s
				}
			}
		}
		data.Nodes = append(data.Nodes, node)
	}

	for _, e := range edges {
		data.Edges = append(data.Edges, EdgeViz{From: e.A, To: e.B})
	}

	return data
}

// ExportJSON exports the visualization to JSON
func (v *Visualization) ExportJSON() ([]byte, error) {
	return json.Marshal(v.Data())
}
