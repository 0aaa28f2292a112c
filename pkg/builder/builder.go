package builder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/errors"
)

// Builder accumulates shapes and connections. The first error encountered is
// kept and reported by [Builder.Build]; later calls become no-ops.
type Builder struct {
	d    diagram.Diagram
	ids  map[string]bool
	last string
	err  error
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{ids: make(map[string]bool)}
}

// Add appends s. A shape with an empty ID gets a generated one. Duplicate IDs
// and invalid kinds are recorded as errors.
func (b *Builder) Add(s diagram.Shape) *Builder {
	if b.err != nil {
		return b
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if err := errors.ValidateShapeID(s.ID); err != nil {
		b.err = err
		return b
	}
	if err := errors.ValidateLabel(s.Label); err != nil {
		b.err = err
		return b
	}
	if b.ids[s.ID] {
		b.err = errors.Wrap(errors.ErrCodeInvalidDiagram, diagram.ErrDuplicateShapeID, "shape %q", s.ID)
		return b
	}
	if !s.Type.Valid() {
		b.err = errors.Wrap(errors.ErrCodeInvalidShapeKind, diagram.ErrUnknownShapeKind, "shape %q", s.ID)
		return b
	}
	if s.Size == (diagram.Size{}) {
		s.Size = diagram.Size{Width: diagram.DefaultShapeWidth, Height: diagram.DefaultShapeHeight}
	}
	b.ids[s.ID] = true
	b.last = s.ID
	b.d.Shapes = append(b.d.Shapes, s)
	return b
}

// Shape adds a shape with a generated ID and returns that ID.
func (b *Builder) Shape(kind diagram.ShapeKind, label string) string {
	b.Add(diagram.Shape{Type: kind, Label: label})
	if b.err != nil {
		return ""
	}
	return b.last
}

// Last returns the ID of the most recently added shape.
func (b *Builder) Last() string { return b.last }

// Connect adds an unlabeled connection.
func (b *Builder) Connect(source, target string) *Builder {
	return b.ConnectLabeled(source, target, "")
}

// ConnectLabeled adds a connection carrying label. Both endpoints must have
// been added already.
func (b *Builder) ConnectLabeled(source, target, label string) *Builder {
	if b.err != nil {
		return b
	}
	for _, id := range []string{source, target} {
		if !b.ids[id] {
			b.err = errors.Wrap(errors.ErrCodeInvalidDiagram, diagram.ErrDanglingConnection, "connect %q", id)
			return b
		}
	}
	if err := errors.ValidateLabel(label); err != nil {
		b.err = err
		return b
	}
	b.d.Connections = append(b.d.Connections, diagram.Connection{Source: source, Target: target, Label: label})
	return b
}

// Chain connects ids in order: ids[0]→ids[1]→…
func (b *Builder) Chain(ids ...string) *Builder {
	for i := 1; i < len(ids); i++ {
		b.Connect(ids[i-1], ids[i])
	}
	return b
}

// Err returns the first error recorded so far.
func (b *Builder) Err() error { return b.err }

// Build returns the assembled diagram. The builder may keep being used; the
// returned diagram does not share memory with it.
func (b *Builder) Build() (diagram.Diagram, error) {
	if b.err != nil {
		return diagram.Diagram{}, b.err
	}
	return b.d.Clone(), nil
}

// MustBuild is like Build but panics on error. It is meant for patterns whose
// inputs are known to be valid.
func (b *Builder) MustBuild() diagram.Diagram {
	d, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("builder: %v", err))
	}
	return d
}
