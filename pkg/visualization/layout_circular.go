package visualization

import "github.com/dd0wney/ppinet/pkg/network"

// CircularLayout puts every protein on one ring in first-appearance order.
type CircularLayout struct {
	config *LayoutConfig
}

func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	return &CircularLayout{config: withDefaults(config)}
}

func (cl *CircularLayout) ComputeLayout(g *network.Graph) (map[string]Position, error) {
	n := g.NumberOfNodes()
	positions := make(map[string]Position, n)
	c := newCanvas(cl.config)

	switch n {
	case 0:
	case 1:
		positions[g.NodeAt(0)] = c.center()
	default:
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		c.placeRing(g, order, c.maxRadius(), positions)
	}
	return positions, nil
}
