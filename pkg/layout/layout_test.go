package layout

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

func build(ids []string, edges ...[2]string) diagram.Diagram {
	d := diagram.Diagram{}
	for _, id := range ids {
		d.Shapes = append(d.Shapes, diagram.Shape{ID: id})
	}
	for _, e := range edges {
		d.Connections = append(d.Connections, diagram.Connection{Source: e[0], Target: e[1]})
	}
	return d
}

func posOf(t *testing.T, d diagram.Diagram, id string) diagram.Point {
	t.Helper()
	s, ok := d.Shape(id)
	if !ok {
		t.Fatalf("shape %q missing", id)
	}
	if !s.Placed() {
		t.Fatalf("shape %q not placed", id)
	}
	return *s.Position
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRun_EmptyAndEdgeless(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			out := Run(diagram.Diagram{}, alg)
			if len(out.Shapes) != 0 {
				t.Errorf("empty diagram produced %d shapes", len(out.Shapes))
			}
			edgeless := Run(build([]string{"a", "b", "c"}), alg)
			if len(edgeless.Shapes) != 3 {
				t.Errorf("edgeless diagram produced %d shapes", len(edgeless.Shapes))
			}
		})
	}
}

func TestRun_UnknownAlgorithm(t *testing.T) {
	d := build([]string{"a"})
	d.Shapes[0] = d.Shapes[0].At(3, 4)

	out := Run(d, Algorithm("spiral"))

	if posOf(t, out, "a") != (diagram.Point{X: 3, Y: 4}) {
		t.Errorf("unknown algorithm moved shape: %v", posOf(t, out, "a"))
	}
	if &out.Shapes[0] == &d.Shapes[0] || out.Shapes[0].Position == d.Shapes[0].Position {
		t.Error("unknown algorithm should return a copy")
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "b"})
	d.Shapes[0] = d.Shapes[0].At(1, 1)

	for _, alg := range Algorithms() {
		Run(d, alg)
		if *d.Shapes[0].Position != (diagram.Point{X: 1, Y: 1}) || d.Shapes[1].Placed() {
			t.Fatalf("%s mutated its input", alg)
		}
	}
}

func TestHierarchical_TopDown(t *testing.T) {
	//   a
	//  / \
	// b   c
	d := build([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"a", "c"})

	out := Run(d, Hierarchical,
		WithMargin(0), WithLevelSeparation(100), WithNodeSeparation(50))

	tests := map[string]diagram.Point{
		"a": {X: 25, Y: 0},
		"b": {X: 0, Y: 100},
		"c": {X: 50, Y: 100},
	}
	for id, want := range tests {
		if got := posOf(t, out, id); got != want {
			t.Errorf("%s = %v, want %v", id, got, want)
		}
	}
}

func TestHierarchical_LeftRight(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "b"})
	out := Run(d, Hierarchical, WithMargin(0), WithLevelSeparation(100), WithDirection(LeftRight))

	if got := posOf(t, out, "b"); got != (diagram.Point{X: 100, Y: 0}) {
		t.Errorf("b = %v, want {100 0}", got)
	}
}

func TestHierarchical_UnreachedKeepPosition(t *testing.T) {
	d := build([]string{"root", "x", "y"}, [2]string{"x", "y"}, [2]string{"y", "x"})
	d.Shapes[1] = d.Shapes[1].At(7, 7)

	out := Run(d, Hierarchical)

	if got := posOf(t, out, "x"); got != (diagram.Point{X: 7, Y: 7}) {
		t.Errorf("unreached x moved to %v", got)
	}
	if s, _ := out.Shape("y"); s.Placed() {
		t.Error("unreached unplaced y should stay unplaced")
	}
}

func TestHierarchical_Deterministic(t *testing.T) {
	d := build([]string{"a", "b", "c", "d", "e"},
		[2]string{"a", "b"}, [2]string{"a", "c"}, [2]string{"b", "d"},
		[2]string{"c", "d"}, [2]string{"d", "e"}, [2]string{"e", "b"},
	)
	opts := []Option{WithLevelSeparation(80), WithNodeSeparation(60)}

	first := Run(d, Hierarchical, opts...)
	second := Run(d, Hierarchical, opts...)

	for i := range first.Shapes {
		if first.Shapes[i].Pos() != second.Shapes[i].Pos() {
			t.Errorf("shape %s: %v vs %v", first.Shapes[i].ID, first.Shapes[i].Pos(), second.Shapes[i].Pos())
		}
	}
}

func TestOrthogonal_WiderDefaults(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "b"})
	h := Run(d, Hierarchical)
	o := Run(d, Orthogonal)

	gapH := posOf(t, h, "b").Y - posOf(t, h, "a").Y
	gapO := posOf(t, o, "b").Y - posOf(t, o, "a").Y
	if gapH != DefaultLevelSeparation || gapO != OrthogonalLevelSeparation {
		t.Errorf("level gaps = %v/%v, want %v/%v", gapH, gapO, DefaultLevelSeparation, OrthogonalLevelSeparation)
	}
}

func TestCircular_Radius(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 50} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("s%d", i)
			}
			out := Run(build(ids), Circular, WithRadius(120), WithCenter(10, -20))
			for _, s := range out.Shapes {
				p := s.Pos()
				if dist := math.Hypot(p.X-10, p.Y+20); math.Abs(dist-120) > 1e-9 {
					t.Errorf("%s at distance %v, want 120", s.ID, dist)
				}
			}
		})
	}
}

func TestTree(t *testing.T) {
	//     r
	//    / \
	//   a   b
	//  / \
	// c   d
	d := build([]string{"r", "a", "b", "c", "d"},
		[2]string{"r", "a"}, [2]string{"r", "b"},
		[2]string{"a", "c"}, [2]string{"a", "d"},
	)
	opts := []Option{WithMargin(0), WithSiblingSeparation(100), WithLevelSeparation(50)}

	out := Run(d, Tree, opts...)

	tests := map[string]diagram.Point{
		"r": {X: 100, Y: 0},
		"a": {X: 50, Y: 50},
		"b": {X: 200, Y: 50},
		"c": {X: 0, Y: 100},
		"d": {X: 100, Y: 100},
	}
	for id, want := range tests {
		if got := posOf(t, out, id); !near(got.X, want.X) || !near(got.Y, want.Y) {
			t.Errorf("%s = %v, want %v", id, got, want)
		}
	}

	lr := Run(d, Tree, append(opts, WithDirection(LeftRight))...)
	if got := posOf(t, lr, "c"); !near(got.X, 100) || !near(got.Y, 0) {
		t.Errorf("left-right c = %v, want {100 0}", got)
	}
}

func TestTree_SharedChildAttachedOnce(t *testing.T) {
	d := build([]string{"r", "a", "b", "shared"},
		[2]string{"r", "a"}, [2]string{"r", "b"},
		[2]string{"a", "shared"}, [2]string{"b", "shared"},
	)
	out := Run(d, Tree, WithMargin(0), WithSiblingSeparation(100), WithLevelSeparation(50))

	// shared hangs under a only, so a and shared share a column.
	if posOf(t, out, "shared").X != posOf(t, out, "a").X {
		t.Errorf("shared = %v, a = %v", posOf(t, out, "shared"), posOf(t, out, "a"))
	}
}

func TestTree_MultipleRoots(t *testing.T) {
	d := build([]string{"r1", "r2", "c"}, [2]string{"r1", "c"})
	out := Run(d, Tree, WithMargin(0), WithSiblingSeparation(100))

	if got := posOf(t, out, "r2").X; got != 100 {
		t.Errorf("second root X = %v, want 100", got)
	}
}

func TestGrid(t *testing.T) {
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("s%d", i)
	}
	const cols = 3
	out := Run(build(ids), Grid, WithColumns(cols), WithCell(100, 50), WithPadding(10))

	for i, s := range out.Shapes {
		row, col := i/cols, i%cols
		want := diagram.Point{X: 10 + float64(col)*110, Y: 10 + float64(row)*60}
		if s.Pos() != want {
			t.Errorf("shape %d = %v, want %v", i, s.Pos(), want)
		}
	}
}

func TestColumns(t *testing.T) {
	tests := []struct{ n, requested, want int }{
		{0, 0, 1},
		{1, 0, 1},
		{10, 0, 4},
		{16, 0, 4},
		{10, 3, 3},
		{10, -2, 4},
	}
	for _, tt := range tests {
		if got := Columns(tt.n, tt.requested); got != tt.want {
			t.Errorf("Columns(%d, %d) = %d, want %d", tt.n, tt.requested, got, tt.want)
		}
	}
}

func TestForceDirected_Finite(t *testing.T) {
	d := build([]string{"a", "b", "c", "d", "e"},
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"},
		[2]string{"d", "d"}, [2]string{"a", "ghost"},
	)
	// coincident and extreme starting points
	d.Shapes[0] = d.Shapes[0].At(0, 0)
	d.Shapes[1] = d.Shapes[1].At(0, 0)
	d.Shapes[2] = d.Shapes[2].At(1e300, -1e300)
	d.Shapes[3] = d.Shapes[3].At(5e-324, 0)

	for _, alg := range []Algorithm{ForceDirected, Organic} {
		for _, iters := range []int{0, 1, 10, 200} {
			out := Run(d, alg, WithIterations(iters))
			for _, s := range out.Shapes {
				p := s.Pos()
				if !s.Placed() || !finite(p.X) || !finite(p.Y) {
					t.Errorf("%s/%d: %s at %v", alg, iters, s.ID, p)
				}
			}
		}
	}
}

func TestForceDirected_OriginIsPlaced(t *testing.T) {
	d := build([]string{"a"})
	d.Shapes[0] = d.Shapes[0].At(0, 0)

	out := Run(d, ForceDirected, WithIterations(5))

	if got := posOf(t, out, "a"); got != (diagram.Point{}) {
		t.Errorf("lone shape at origin moved to %v", got)
	}
}

func TestForceDirected_SeedsUnplacedDeterministically(t *testing.T) {
	d := build([]string{"a", "b", "c"}, [2]string{"a", "b"})

	first := Run(d, ForceDirected, WithIterations(0), WithSeed(7), WithBounds(400, 300))
	second := Run(d, ForceDirected, WithIterations(0), WithSeed(7), WithBounds(400, 300))

	for i, s := range first.Shapes {
		p := s.Pos()
		if p != second.Shapes[i].Pos() {
			t.Errorf("%s: %v vs %v", s.ID, p, second.Shapes[i].Pos())
		}
		if p.X < 0 || p.X > 400 || p.Y < 0 || p.Y > 300 {
			t.Errorf("%s seeded outside bounds: %v", s.ID, p)
		}
	}
}

func TestForceDirected_MaxDisplacement(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "b"})
	d.Shapes[0] = d.Shapes[0].At(0, 0)
	d.Shapes[1] = d.Shapes[1].At(1000, 0)

	out := Run(d, ForceDirected, WithIterations(1))

	if moved := posOf(t, out, "a").X; moved <= 0 || moved > DefaultMaxDisplacement+1e-9 {
		t.Errorf("a moved %v, want (0, %v]", moved, DefaultMaxDisplacement)
	}
}

func TestForceDirected_SpringsUseFirstShapeOfID(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"b", "b"})
	d.Shapes = append(d.Shapes, diagram.Shape{ID: "a"}.At(0, 500))
	d.Shapes[0] = d.Shapes[0].At(0, 0)
	d.Shapes[1] = d.Shapes[1].At(600, 0)

	out := Run(d, ForceDirected, WithIterations(1))

	if x := out.Shapes[0].Pos().X; x <= 0 {
		t.Errorf("first a at x=%v, want pulled toward b", x)
	}
	if x := out.Shapes[2].Pos().X; x >= 0 {
		t.Errorf("duplicate a at x=%v, want only repelled by b", x)
	}
}

func TestForceDirected_SpringPullsTogether(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "b"})
	d.Shapes[0] = d.Shapes[0].At(0, 0)
	d.Shapes[1] = d.Shapes[1].At(600, 0)

	out := Run(d, ForceDirected, WithIterations(50))

	before := 600.0
	after := posOf(t, out, "b").X - posOf(t, out, "a").X
	if after >= before {
		t.Errorf("distance grew from %v to %v", before, after)
	}
}

func TestRunContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := RunContext(ctx, build([]string{"a", "b"}), ForceDirected)
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	for _, s := range out.Shapes {
		if !s.Placed() {
			t.Errorf("%s left unplaced after cancellation", s.ID)
		}
	}
}

func TestParams_Options(t *testing.T) {
	sep := 42.0
	cols := 2
	p := Params{Direction: "left-right", LevelSeparation: &sep, Columns: &cols}

	opts, err := p.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	cfg := defaultConfig(Hierarchical)
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.direction != LeftRight || cfg.levelSeparation != 42 || cfg.columns != 2 {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := (Params{Direction: "diagonal"}).Options(); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestParams_Merge(t *testing.T) {
	a, b := 1.0, 2.0
	merged := Params{K: &a}.Merge(Params{K: &b, C: &b, Direction: "left-right"})
	if *merged.K != 1 || *merged.C != 2 || merged.Direction != "left-right" {
		t.Errorf("merged = %+v", merged)
	}
}
