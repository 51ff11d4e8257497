package visualization

import (
	"math"

	"github.com/dd0wney/ppinet/pkg/network"
)

// canvas is the drawable area of a layout: width by height with a margin of
// padding on every side.
type canvas struct {
	width, height, padding float64
}

func newCanvas(c *LayoutConfig) canvas {
	return canvas{width: c.Width, height: c.Height, padding: c.Padding}
}

func (c canvas) center() Position {
	return Position{X: c.width / 2, Y: c.height / 2}
}

// maxRadius is the largest ring that stays inside the padding
func (c canvas) maxRadius() float64 {
	return math.Max(0, math.Min(c.width, c.height)/2-c.padding)
}

// placeRing spreads nodes evenly on a circle of radius r around the centre,
// starting at angle zero.
func (c canvas) placeRing(g *network.Graph, nodes []int, r float64, out map[string]Position) {
	if len(nodes) == 0 {
		return
	}
	mid := c.center()
	step := 2 * math.Pi / float64(len(nodes))
	for i, v := range nodes {
		angle := float64(i) * step
		out[g.NodeAt(v)] = Position{
			X: mid.X + r*math.Cos(angle),
			Y: mid.Y + r*math.Sin(angle),
		}
	}
}

// fit rescales points so their bounding box fills the padded canvas. A
// degenerate axis, where all points share a coordinate, is centred.
func (c canvas) fit(points []Position) {
	if len(points) == 0 {
		return
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
	}

	scale := func(v, min, max, size float64) float64 {
		span := max - min
		if span < 0.01 {
			return size / 2
		}
		return c.padding + (v-min)/span*(size-2*c.padding)
	}
	for i, p := range points {
		points[i] = Position{
			X: scale(p.X, lo.X, hi.X, c.width),
			Y: scale(p.Y, lo.Y, hi.Y, c.height),
		}
	}
}

// withDefaults copies config, filling the zero fields a layout needs.
func withDefaults(config *LayoutConfig) *LayoutConfig {
	c := *DefaultLayoutConfig()
	if config != nil {
		c.Root = config.Root
		if config.Width > 0 {
			c.Width = config.Width
		}
		if config.Height > 0 {
			c.Height = config.Height
		}
		if config.Iterations > 0 {
			c.Iterations = config.Iterations
		}
		if config.Padding > 0 {
			c.Padding = config.Padding
		}
		if config.Seed != 0 {
			c.Seed = config.Seed
		}
	}
	return &c
}
