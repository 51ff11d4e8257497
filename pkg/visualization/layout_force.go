package visualization

import (
	"math"
	"math/rand"

	"github.com/dd0wney/ppinet/pkg/network"
)

// ForceDirectedLayout implements the Fruchterman-Reingold spring layout
type ForceDirectedLayout struct {
	config *LayoutConfig
}

func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	return &ForceDirectedLayout{config: withDefaults(config)}
}

// ComputeLayout computes positions using force-directed algorithm. The same
// graph and seed always produce the same picture.
func (fdl *ForceDirectedLayout) ComputeLayout(g *network.Graph) (map[string]Position, error) {
	n := g.NumberOfNodes()
	if n == 0 {
		return make(map[string]Position), nil
	}

	// Single node - center it
	if n == 1 {
		return map[string]Position{
			g.NodeAt(0): {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}, nil
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))

	// Initialize random positions
	positions := make([]Position, n)
	for i := range positions {
		positions[i] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	// Force-directed iterations
	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(n)) // Optimal distance
	temperature := fdl.config.Width / 10.0
	forces := make([]Position, n)

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		for i := range forces {
			forces[i] = Position{}
		}

		// Repulsion between all nodes
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := positions[i].X - positions[j].X
				dy := positions[i].Y - positions[j].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[i].X += fx
				forces[i].Y += fy
				forces[j].X -= fx
				forces[j].Y -= fy
			}
		}

		// Attraction between interacting proteins
		for i := 0; i < n; i++ {
			for _, j := range g.AdjacencyIndices(i) {
				dx := positions[i].X - positions[j].X
				dy := positions[i].Y - positions[j].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				forces[i].X -= (dx / dist) * force
				forces[i].Y -= (dy / dist) * force
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for i := range positions {
			fx := forces[i].X
			fy := forces[i].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				positions[i].X += (fx / force) * math.Min(force, temperature) * cool
				positions[i].Y += (fy / force) * math.Min(force, temperature) * cool
			}
		}

		temperature *= 0.95
	}

	newCanvas(fdl.config).fit(positions)

	byID := make(map[string]Position, n)
	for i, pos := range positions {
		byID[g.NodeAt(i)] = pos
	}
	return byID, nil
}
