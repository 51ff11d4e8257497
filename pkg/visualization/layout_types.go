package visualization

import (
	"fmt"
	"strings"

	"github.com/dd0wney/ppinet/pkg/network"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // Seed for the initial spring placement; 0 picks 1
	Root       string  // Centre protein of the shell layout
}

// DefaultLayoutConfig returns an 800x600 canvas with 50 spring iterations.
func DefaultLayoutConfig() *LayoutConfig {
	return &LayoutConfig{
		Width:      800,
		Height:     600,
		Iterations: 50,
		Padding:    50,
		Seed:       1,
	}
}

// Layout assigns a position to every protein of a network
type Layout interface {
	ComputeLayout(g *network.Graph) (map[string]Position, error)
}

// LayoutKind names a layout algorithm.
type LayoutKind string

const (
	LayoutSpring   LayoutKind = "spring"
	LayoutCircular LayoutKind = "circular"
	LayoutShell    LayoutKind = "shell"
)

// LayoutKinds lists the supported layouts.
var LayoutKinds = []LayoutKind{LayoutSpring, LayoutCircular, LayoutShell}

// ParseLayoutKind maps a name to a LayoutKind. The empty string selects
// the spring layout.
func ParseLayoutKind(s string) (LayoutKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return LayoutSpring, nil
	}
	for _, k := range LayoutKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown layout %q", s)
}

// NewLayout creates the layout named by kind.
func NewLayout(kind LayoutKind, config *LayoutConfig) (Layout, error) {
	if config == nil {
		config = DefaultLayoutConfig()
	}
	switch kind {
	case LayoutSpring, "":
		return NewForceDirectedLayout(config), nil
	case LayoutCircular:
		return NewCircularLayout(config), nil
	case LayoutShell:
		return NewShellLayout(config), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", kind)
	}
}
