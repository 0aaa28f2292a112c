package export

import (
	"maps"

	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/errors"
)

// ShapeStyle holds the colors used to draw one kind of shape.
type ShapeStyle struct {
	Fill      string `json:"fill" toml:"fill"`
	Stroke    string `json:"stroke" toml:"stroke"`
	FontColor string `json:"font_color" toml:"font_color"`
}

// Styles maps shape kinds to colors. Styles values are immutable: every
// modifier returns a new value and leaves the receiver untouched. The zero
// value behaves like [DefaultStyles].
type Styles struct {
	shapes map[diagram.ShapeKind]ShapeStyle
	edge   string
}

// DefaultStyles returns a fresh copy of the built-in palette.
func DefaultStyles() Styles {
	return Styles{
		shapes: map[diagram.ShapeKind]ShapeStyle{
			diagram.KindRectangle:     {Fill: "#dae8fc", Stroke: "#6c8ebf", FontColor: "#000000"},
			diagram.KindRounded:       {Fill: "#dae8fc", Stroke: "#6c8ebf", FontColor: "#000000"},
			diagram.KindDiamond:       {Fill: "#fff2cc", Stroke: "#d6b656", FontColor: "#000000"},
			diagram.KindEllipse:       {Fill: "#e1d5e7", Stroke: "#9673a6", FontColor: "#000000"},
			diagram.KindCircle:        {Fill: "#e1d5e7", Stroke: "#9673a6", FontColor: "#000000"},
			diagram.KindParallelogram: {Fill: "#ffe6cc", Stroke: "#d79b00", FontColor: "#000000"},
			diagram.KindHexagon:       {Fill: "#f8cecc", Stroke: "#b85450", FontColor: "#000000"},
			diagram.KindCylinder:      {Fill: "#f5f5f5", Stroke: "#666666", FontColor: "#333333"},
			diagram.KindDocument:      {Fill: "#ffffff", Stroke: "#666666", FontColor: "#333333"},
			diagram.KindTerminator:    {Fill: "#d5e8d4", Stroke: "#82b366", FontColor: "#000000"},
			diagram.KindNote:          {Fill: "#fff2cc", Stroke: "#d6b656", FontColor: "#333333"},
			diagram.KindActor:         {Fill: "#ffffff", Stroke: "#000000", FontColor: "#000000"},
		},
		edge: "#333333",
	}
}

// Shape returns the style for kind k. Kinds missing from s fall back to the
// default palette.
func (s Styles) Shape(k diagram.ShapeKind) ShapeStyle {
	if st, ok := s.shapes[k]; ok {
		return st
	}
	if st, ok := DefaultStyles().shapes[k]; ok {
		return st
	}
	return DefaultStyles().shapes[diagram.KindRectangle]
}

// Edge returns the connection stroke color.
func (s Styles) Edge() string {
	if s.edge == "" {
		return DefaultStyles().edge
	}
	return s.edge
}

// WithShape returns a copy of s with kind k drawn in st.
func (s Styles) WithShape(k diagram.ShapeKind, st ShapeStyle) Styles {
	out := s.clone()
	out.shapes[k] = st
	return out
}

// WithEdge returns a copy of s with connections stroked in color.
func (s Styles) WithEdge(color string) Styles {
	out := s.clone()
	out.edge = color
	return out
}

func (s Styles) clone() Styles {
	if s.shapes == nil {
		return DefaultStyles()
	}
	return Styles{shapes: maps.Clone(s.shapes), edge: s.edge}
}

// ParseStyles applies overrides keyed by shape kind name on top of the default
// palette. Empty fields keep the default color.
func ParseStyles(overrides map[string]ShapeStyle) (Styles, error) {
	out := DefaultStyles()
	for name, st := range overrides {
		k, err := diagram.ParseShapeKind(name)
		if err != nil {
			return Styles{}, errors.Wrap(errors.ErrCodeInvalidShapeKind, err, "style for %q", name)
		}
		base := out.shapes[k]
		if st.Fill != "" {
			base.Fill = st.Fill
		}
		if st.Stroke != "" {
			base.Stroke = st.Stroke
		}
		if st.FontColor != "" {
			base.FontColor = st.FontColor
		}
		out.shapes[k] = base
	}
	return out, nil
}
