package layout

import (
	"context"
	"math"
	"math/rand/v2"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

// seeder returns the starting position of the i-th shape when it is unplaced.
type seeder func(i int) diagram.Point

func randomSeeder(cfg config) seeder {
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0xdeadbeef))
	return func(int) diagram.Point {
		return diagram.Point{X: rng.Float64() * cfg.width, Y: rng.Float64() * cfg.height}
	}
}

// noiseSeeder samples simplex noise along a line through noise space.
// Consecutive shapes start near each other.
func noiseSeeder(cfg config) seeder {
	noise := opensimplex.New(int64(cfg.seed))
	const scale = 0.35
	return func(i int) diagram.Point {
		t := float64(i) * scale
		nx := noise.Eval2(t, 0)
		ny := noise.Eval2(0, t+100)
		return diagram.Point{
			X: cfg.width/2 + nx*cfg.width/2,
			Y: cfg.height/2 + ny*cfg.height/2,
		}
	}
}

// simulate runs a spring embedder: every pair of shapes repels with k²/d,
// every connection attracts its endpoints with d²/k, and each step moves a
// shape along its net force scaled by c, at most maxDisplacement units.
// Coincident shapes are treated as one unit apart along X.
func simulate(ctx context.Context, d *diagram.Diagram, g *diagram.Graph, cfg config, seed seeder) error {
	n := len(d.Shapes)
	if n == 0 {
		return nil
	}

	pos := make([]diagram.Point, n)
	for i, s := range d.Shapes {
		if s.Placed() {
			pos[i] = *s.Position
		} else {
			pos[i] = seed(i)
		}
	}

	// One spring per connection between the first shapes of its endpoints.
	// Parallel connections pull twice; self-loops do not pull.
	var springs [][2]int
	for _, id := range g.IDs() {
		ti := g.Index(id)
		for _, parent := range g.Parents(id) {
			if si := g.Index(parent); si != ti {
				springs = append(springs, [2]int{si, ti})
			}
		}
	}

	var err error
	disp := make([]diagram.Point, n)
	k2 := cfg.k * cfg.k
	for iter := 0; iter < cfg.iterations; iter++ {
		if err = ctx.Err(); err != nil {
			break
		}
		clear(disp)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ux, uy, dist := unit(pos[i], pos[j])
				if !finite(dist) {
					continue
				}
				f := k2 / dist
				disp[i].X += ux * f
				disp[i].Y += uy * f
				disp[j].X -= ux * f
				disp[j].Y -= uy * f
			}
		}

		for _, e := range springs {
			s, t := e[0], e[1]
			ux, uy, dist := unit(pos[s], pos[t])
			if !finite(dist) {
				continue
			}
			f := dist * dist / cfg.k
			disp[s].X -= ux * f
			disp[s].Y -= uy * f
			disp[t].X += ux * f
			disp[t].Y += uy * f
		}

		for i := range pos {
			dx, dy := disp[i].X*cfg.c, disp[i].Y*cfg.c
			length := math.Hypot(dx, dy)
			if !finite(length) {
				continue
			}
			if length > cfg.maxDisplacement {
				dx *= cfg.maxDisplacement / length
				dy *= cfg.maxDisplacement / length
			}
			pos[i].X += dx
			pos[i].Y += dy
		}
	}

	for i, s := range d.Shapes {
		d.Shapes[i] = s.At(pos[i].X, pos[i].Y)
	}
	return err
}

// unit returns the unit vector from b to a and their distance. Coincident
// points yield (1, 0) at distance 1.
func unit(a, b diagram.Point) (ux, uy, dist float64) {
	dx, dy := a.X-b.X, a.Y-b.Y
	dist = math.Hypot(dx, dy)
	if dist == 0 {
		return 1, 0, 1
	}
	return dx / dist, dy / dist, dist
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
