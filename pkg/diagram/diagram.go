package diagram

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidShapeID is returned by [Diagram.Validate] when a shape has an
	// empty ID.
	ErrInvalidShapeID = errors.New("shape ID must not be empty")

	// ErrDuplicateShapeID is returned by [Diagram.Validate] when two shapes
	// share an ID.
	ErrDuplicateShapeID = errors.New("duplicate shape ID")

	// ErrDanglingConnection is returned by [Diagram.Validate] when a
	// connection references a shape that does not exist.
	ErrDanglingConnection = errors.New("connection references unknown shape")

	// ErrUnknownShapeKind is returned when a shape type string does not name
	// one of the supported [ShapeKind] values.
	ErrUnknownShapeKind = errors.New("unknown shape kind")
)

// ShapeKind is the closed set of shape types a diagram may contain.
// Algorithms treat the kind as opaque; exporters switch over it exhaustively.
type ShapeKind int

const (
	KindRectangle ShapeKind = iota
	KindRounded
	KindDiamond
	KindEllipse
	KindCircle
	KindParallelogram
	KindHexagon
	KindCylinder
	KindDocument
	KindTerminator
	KindNote
	KindActor

	kindCount
)

var kindNames = [kindCount]string{
	KindRectangle:     "rectangle",
	KindRounded:       "rounded",
	KindDiamond:       "diamond",
	KindEllipse:       "ellipse",
	KindCircle:        "circle",
	KindParallelogram: "parallelogram",
	KindHexagon:       "hexagon",
	KindCylinder:      "cylinder",
	KindDocument:      "document",
	KindTerminator:    "terminator",
	KindNote:          "note",
	KindActor:         "actor",
}

// Kinds returns every supported shape kind in declaration order.
func Kinds() []ShapeKind {
	kinds := make([]ShapeKind, kindCount)
	for i := range kinds {
		kinds[i] = ShapeKind(i)
	}
	return kinds
}

// String returns the lowercase name used in JSON and on the command line.
func (k ShapeKind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k ShapeKind) Valid() bool { return k >= 0 && k < kindCount }

// ParseShapeKind resolves a kind name case-insensitively. The empty string
// resolves to [KindRectangle].
func ParseShapeKind(s string) (ShapeKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindRectangle, nil
	}
	for i, name := range kindNames {
		if name == s {
			return ShapeKind(i), nil
		}
	}
	return KindRectangle, fmt.Errorf("%w: %q", ErrUnknownShapeKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ShapeKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShapeKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShapeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShapeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Point is a 2-D coordinate in user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the extent of a shape.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Default shape dimensions used when a shape carries no size.
const (
	DefaultShapeWidth  = 120.0
	DefaultShapeHeight = 60.0
)

// Shape is a vertex of the diagram.
type Shape struct {
	ID       string    `json:"id"`
	Type     ShapeKind `json:"type"`
	Label    string    `json:"label,omitempty"`
	Position *Point    `json:"position,omitempty"` // nil until placed
	Size     Size      `json:"size"`
}

// Placed reports whether the shape has a position.
func (s Shape) Placed() bool { return s.Position != nil }

// Pos returns the shape position, or the origin if the shape is unplaced.
func (s Shape) Pos() Point {
	if s.Position == nil {
		return Point{}
	}
	return *s.Position
}

// DisplayLabel returns the label if set, otherwise the ID.
func (s Shape) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}

// At returns a copy of s placed at (x, y).
func (s Shape) At(x, y float64) Shape {
	s.Position = &Point{X: x, Y: y}
	return s
}

// Connection is a directed edge between two shapes.
type Connection struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// IsSelfLoop reports whether the connection starts and ends at the same shape.
func (c Connection) IsSelfLoop() bool { return c.Source == c.Target }

// Diagram is an ordered collection of shapes and connections.
// The zero value is an empty, usable diagram.
type Diagram struct {
	Shapes      []Shape      `json:"shapes"`
	Connections []Connection `json:"connections"`
}

// Clone returns a deep copy of the diagram. Positions are copied, so the
// clone may be repositioned without affecting d.
func (d Diagram) Clone() Diagram {
	out := Diagram{
		Shapes:      make([]Shape, len(d.Shapes)),
		Connections: slices.Clone(d.Connections),
	}
	if out.Connections == nil {
		out.Connections = []Connection{}
	}
	for i, s := range d.Shapes {
		if s.Position != nil {
			p := *s.Position
			s.Position = &p
		}
		out.Shapes[i] = s
	}
	return out
}

// Shape returns the shape with the given ID and true, or a zero Shape and
// false if no such shape exists.
func (d Diagram) Shape(id string) (Shape, bool) {
	for _, s := range d.Shapes {
		if s.ID == id {
			return s, true
		}
	}
	return Shape{}, false
}

// IDs returns the shape IDs in diagram order.
func (d Diagram) IDs() []string {
	ids := make([]string, len(d.Shapes))
	for i, s := range d.Shapes {
		ids[i] = s.ID
	}
	return ids
}

// Validate checks structural integrity and returns the first problem found.
// Algorithms in this module never require a valid diagram; Validate exists for
// callers that want to reject malformed input up front.
func (d Diagram) Validate() error {
	seen := make(map[string]bool, len(d.Shapes))
	for i, s := range d.Shapes {
		if s.ID == "" {
			return fmt.Errorf("shape %d: %w", i, ErrInvalidShapeID)
		}
		if seen[s.ID] {
			return fmt.Errorf("shape %q: %w", s.ID, ErrDuplicateShapeID)
		}
		if !s.Type.Valid() {
			return fmt.Errorf("shape %q: %w", s.ID, ErrUnknownShapeKind)
		}
		seen[s.ID] = true
	}
	for _, c := range d.Connections {
		if !seen[c.Source] || !seen[c.Target] {
			return fmt.Errorf("%s→%s: %w", c.Source, c.Target, ErrDanglingConnection)
		}
	}
	return nil
}
