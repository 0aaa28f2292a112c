package layout

import (
	"context"
	"strings"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

// Algorithm names a layout algorithm.
type Algorithm string

const (
	Hierarchical  Algorithm = "hierarchical"
	ForceDirected Algorithm = "force-directed"
	Circular      Algorithm = "circular"
	Tree          Algorithm = "tree"
	Grid          Algorithm = "grid"
	Organic       Algorithm = "organic"
	Orthogonal    Algorithm = "orthogonal"
)

// Algorithms returns every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{Hierarchical, ForceDirected, Circular, Tree, Grid, Organic, Orthogonal}
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	for _, known := range Algorithms() {
		if a == known {
			return true
		}
	}
	return false
}

// ParseAlgorithm normalizes s and reports whether it names a supported
// algorithm.
func ParseAlgorithm(s string) (Algorithm, bool) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	return a, a.Valid()
}

// Run lays out d with the given algorithm and returns the positioned copy.
// An unknown algorithm returns an unchanged copy.
func Run(d diagram.Diagram, alg Algorithm, opts ...Option) diagram.Diagram {
	out, _ := RunContext(context.Background(), d, alg, opts...)
	return out
}

// RunContext is like [Run] but stops force-directed simulation when ctx is
// done, returning the diagram as positioned so far together with ctx.Err().
func RunContext(ctx context.Context, d diagram.Diagram, alg Algorithm, opts ...Option) (diagram.Diagram, error) {
	out := d.Clone()
	if !alg.Valid() {
		return out, nil
	}

	cfg := defaultConfig(alg)
	for _, opt := range opts {
		opt(&cfg)
	}
	g := diagram.NewGraph(d)

	switch alg {
	case Hierarchical, Orthogonal:
		place(&out, hierarchical(g, cfg))
	case Tree:
		place(&out, tree(g, cfg))
	case Circular:
		circular(&out, cfg)
	case Grid:
		grid(&out, cfg)
	case ForceDirected:
		return out, simulate(ctx, &out, g, cfg, randomSeeder(cfg))
	case Organic:
		return out, simulate(ctx, &out, g, cfg, noiseSeeder(cfg))
	}
	return out, nil
}

// place moves every shape whose ID has a computed position.
func place(d *diagram.Diagram, pos map[string]diagram.Point) {
	for i, s := range d.Shapes {
		if p, ok := pos[s.ID]; ok {
			d.Shapes[i] = s.At(p.X, p.Y)
		}
	}
}

// orient maps level-relative coordinates onto the canvas.
func orient(dir Direction, along, across float64) diagram.Point {
	if dir == LeftRight {
		return diagram.Point{X: across, Y: along}
	}
	return diagram.Point{X: along, Y: across}
}
