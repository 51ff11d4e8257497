package visualization

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/thoas/go-funk"
)

// RenderFormat is a Graphviz output format.
type RenderFormat string

const (
	FormatDOT  RenderFormat = "dot"
	FormatSVG  RenderFormat = "svg"
	FormatXDOT RenderFormat = "xdot"
)

const (
	_highlight = "#1f77b4"
	_plain     = "#555555"

	// Graphviz reads pos in inches; canvas coordinates are points.
	_pointsPerInch = 72.0
)

// RenderOptions controls the Graphviz picture.
type RenderOptions struct {
	Format RenderFormat
	// LabelMetric selects which attached score is printed under each name.
	LabelMetric string
	// Highlight lists proteins drawn as double circles, usually the query.
	Highlight []string
	Title     string
}

// ParseRenderFormat maps a file extension or format name to a RenderFormat.
func ParseRenderFormat(s string) (RenderFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "dot", "gv":
		return FormatDOT, nil
	case "svg":
		return FormatSVG, nil
	case "xdot":
		return FormatXDOT, nil
	}
	return "", fmt.Errorf("unsupported render format %q", s)
}

// Render draws the network with Graphviz's neato engine and writes the
// result to w. Every node is pinned at its layout position, so the picture
// follows the layout the visualization was built with.
func (v *Visualization) Render(ctx context.Context, w io.Writer, opts RenderOptions) error {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to start graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	if opts.Title != "" {
		graph.SetLabel(opts.Title)
	}

	scores := v.Scores[opts.LabelMetric]
	nodes := make(map[string]*cgraph.Node, v.Graph.NumberOfNodes())

	for _, id := range v.Graph.Nodes() {
		node, err := graph.CreateNodeByName(id)
		if err != nil {
			return fmt.Errorf("failed to create node %q: %w", id, err)
		}

		label := id
		if s, ok := scores[id]; ok {
			label = fmt.Sprintf("%s\n%.3f", id, s)
			node.SetComment(fmt.Sprintf("%s=%g", opts.LabelMetric, s))
		}
		node.SetLabel(label)

		if pos, ok := v.Positions[id]; ok {
			// canvas y grows downwards, Graphviz y upwards
			node.SetPos(pos.X/_pointsPerInch, -pos.Y/_pointsPerInch)
			node.SetPin(true)
		}

		if funk.ContainsString(opts.Highlight, id) {
			node.SetShape(cgraph.DoubleCircleShape)
			node.SetColor(_highlight)
		} else {
			node.SetShape(cgraph.EllipseShape)
			node.SetColor(_plain)
		}
		nodes[id] = node
	}

	for i, e := range v.Graph.Edges() {
		edge, err := graph.CreateEdgeByName(fmt.Sprintf("e%d", i), nodes[e.A], nodes[e.B])
		if err != nil {
			return fmt.Errorf("failed to create edge %s-%s: %w", e.A, e.B, err)
		}
		edge.SetDir(cgraph.NoneDir)
	}

	gv.SetLayout(graphviz.NEATO)
	if err := gv.Render(ctx, graph, graphviz.Format(opts.Format), w); err != nil {
		return fmt.Errorf("failed to render %s: %w", opts.Format, err)
	}
	return nil
}

// RenderString renders to an in-memory string.
func (v *Visualization) RenderString(ctx context.Context, opts RenderOptions) (string, error) {
	var buf bytes.Buffer
	if err := v.Render(ctx, &buf, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}
