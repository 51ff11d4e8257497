package visualization

import "github.com/dd0wney/ppinet/pkg/network"

// ShellLayout places the root protein in the centre and every other protein
// on a ring whose radius grows with its hop distance from the root.
// Proteins unreachable from the root share the outermost ring.
type ShellLayout struct {
	config *LayoutConfig
}

func NewShellLayout(config *LayoutConfig) *ShellLayout {
	return &ShellLayout{config: withDefaults(config)}
}

// ComputeLayout arranges nodes in concentric shells
func (sl *ShellLayout) ComputeLayout(g *network.Graph) (map[string]Position, error) {
	positions := make(map[string]Position)

	n := g.NumberOfNodes()
	if n == 0 {
		return positions, nil
	}

	root, ok := g.IndexOf(sl.config.Root)
	if !ok {
		root = highestDegree(g)
	}

	// Build shells using BFS
	shells := make([][]int, 0)
	visited := make([]bool, n)
	visited[root] = true
	current := []int{root}

	for len(current) > 0 {
		shells = append(shells, current)
		next := make([]int, 0)
		for _, v := range current {
			for _, w := range g.AdjacencyIndices(v) {
				if !visited[w] {
					visited[w] = true
					next = append(next, w)
				}
			}
		}
		current = next
	}

	unreached := make([]int, 0)
	for i := 0; i < n; i++ {
		if !visited[i] {
			unreached = append(unreached, i)
		}
	}
	if len(unreached) > 0 {
		shells = append(shells, unreached)
	}

	c := newCanvas(sl.config)
	ringStep := 0.0
	if len(shells) > 1 {
		ringStep = c.maxRadius() / float64(len(shells)-1)
	}
	for level, shell := range shells {
		c.placeRing(g, shell, float64(level)*ringStep, positions)
	}

	return positions, nil
}

// highestDegree returns the index of the best-connected protein, preferring
// the earliest on ties.
func highestDegree(g *network.Graph) int {
	best, bestDegree := 0, -1
	for i := 0; i < g.NumberOfNodes(); i++ {
		if d := len(g.AdjacencyIndices(i)); d > bestDegree {
			best, bestDegree = i, d
		}
	}
	return best
}
