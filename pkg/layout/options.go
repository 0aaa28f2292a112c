package layout

import (
	"fmt"
	"strings"
)

// Direction orients level-based layouts.
type Direction string

const (
	// TopDown stacks levels along Y and spreads siblings along X.
	TopDown Direction = "top-down"
	// LeftRight stacks levels along X and spreads siblings along Y.
	LeftRight Direction = "left-right"
)

// ParseDirection resolves a direction name. The empty string is TopDown.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", TopDown:
		return TopDown, nil
	case LeftRight:
		return LeftRight, nil
	}
	return TopDown, fmt.Errorf("unknown direction %q", s)
}

// Default parameters. Organic and Orthogonal override some of them.
const (
	DefaultLevelSeparation   = 100.0
	DefaultNodeSeparation    = 150.0
	DefaultSiblingSeparation = 150.0
	DefaultIterations        = 100
	DefaultK                 = 100.0
	DefaultC                 = 0.01
	DefaultMaxDisplacement   = 10.0
	DefaultRadius            = 200.0
	DefaultCenterX           = 400.0
	DefaultCenterY           = 300.0
	DefaultCellWidth         = 150.0
	DefaultCellHeight        = 100.0
	DefaultPadding           = 20.0
	DefaultMargin            = 50.0
	DefaultWidth             = 800.0
	DefaultHeight            = 600.0
	DefaultSeed              = 42

	OrganicIterations = 150
	OrganicK          = 150.0
	OrganicC          = 0.02

	OrthogonalLevelSeparation = 150.0
	OrthogonalNodeSeparation  = 200.0
)

type config struct {
	direction         Direction
	levelSeparation   float64
	nodeSeparation    float64
	siblingSeparation float64
	iterations        int
	k                 float64
	c                 float64
	maxDisplacement   float64
	radius            float64
	centerX           float64
	centerY           float64
	columns           int // 0 means ceil(sqrt(n))
	cellWidth         float64
	cellHeight        float64
	padding           float64
	margin            float64
	width             float64
	height            float64
	seed              uint64
}

func defaultConfig(alg Algorithm) config {
	c := config{
		direction:         TopDown,
		levelSeparation:   DefaultLevelSeparation,
		nodeSeparation:    DefaultNodeSeparation,
		siblingSeparation: DefaultSiblingSeparation,
		iterations:        DefaultIterations,
		k:                 DefaultK,
		c:                 DefaultC,
		maxDisplacement:   DefaultMaxDisplacement,
		radius:            DefaultRadius,
		centerX:           DefaultCenterX,
		centerY:           DefaultCenterY,
		cellWidth:         DefaultCellWidth,
		cellHeight:        DefaultCellHeight,
		padding:           DefaultPadding,
		margin:            DefaultMargin,
		width:             DefaultWidth,
		height:            DefaultHeight,
		seed:              DefaultSeed,
	}
	switch alg {
	case Organic:
		c.iterations = OrganicIterations
		c.k = OrganicK
		c.c = OrganicC
	case Orthogonal:
		c.levelSeparation = OrthogonalLevelSeparation
		c.nodeSeparation = OrthogonalNodeSeparation
	}
	return c
}

// Option configures a layout run. Options that do not apply to the chosen
// algorithm are ignored.
type Option func(*config)

// WithDirection sets the orientation of Hierarchical, Orthogonal and Tree.
func WithDirection(d Direction) Option {
	return func(c *config) {
		if d == LeftRight {
			c.direction = LeftRight
		} else {
			c.direction = TopDown
		}
	}
}

// WithLevelSeparation sets the gap between consecutive levels.
func WithLevelSeparation(v float64) Option {
	return func(c *config) { c.levelSeparation = v }
}

// WithNodeSeparation sets the gap between siblings in hierarchical layouts.
func WithNodeSeparation(v float64) Option {
	return func(c *config) { c.nodeSeparation = v }
}

// WithSiblingSeparation sets the width of one leaf unit in the tree layout.
func WithSiblingSeparation(v float64) Option {
	return func(c *config) { c.siblingSeparation = v }
}

// WithIterations sets the number of force-directed steps. Negative values
// are treated as zero.
func WithIterations(n int) Option {
	return func(c *config) { c.iterations = max(0, n) }
}

// WithK sets the ideal distance between shapes in force-directed layouts.
// Non-positive values are ignored.
func WithK(k float64) Option {
	return func(c *config) {
		if k > 0 {
			c.k = k
		}
	}
}

// WithC sets the damping factor applied to net forces.
func WithC(v float64) Option {
	return func(c *config) { c.c = v }
}

// WithMaxDisplacement caps how far a shape moves per force-directed step.
// Non-positive values are ignored.
func WithMaxDisplacement(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.maxDisplacement = v
		}
	}
}

// WithRadius sets the circle radius of the circular layout.
func WithRadius(r float64) Option {
	return func(c *config) { c.radius = r }
}

// WithCenter sets the circle center of the circular layout.
func WithCenter(x, y float64) Option {
	return func(c *config) {
		c.centerX = x
		c.centerY = y
	}
}

// WithColumns sets the grid column count. Values below 1 select
// ceil(sqrt(n)).
func WithColumns(n int) Option {
	return func(c *config) { c.columns = max(0, n) }
}

// WithCell sets the grid cell size.
func WithCell(width, height float64) Option {
	return func(c *config) {
		c.cellWidth = width
		c.cellHeight = height
	}
}

// WithPadding sets the gap around grid cells.
func WithPadding(v float64) Option {
	return func(c *config) { c.padding = v }
}

// WithMargin sets the offset of the first level or tree from the origin.
func WithMargin(v float64) Option {
	return func(c *config) { c.margin = v }
}

// WithBounds sets the box in which unplaced shapes are seeded.
// Non-positive dimensions are ignored.
func WithBounds(width, height float64) Option {
	return func(c *config) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithSeed sets the seed for placing unplaced shapes.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}
