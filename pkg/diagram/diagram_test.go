package diagram

import (
	"errors"
	"testing"
)

func TestParseShapeKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ShapeKind
		wantErr bool
	}{
		{in: "", want: KindRectangle},
		{in: "rectangle", want: KindRectangle},
		{in: "Diamond", want: KindDiamond},
		{in: "  ellipse ", want: KindEllipse},
		{in: "terminator", want: KindTerminator},
		{in: "star", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShapeKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownShapeKind) {
					t.Fatalf("ParseShapeKind(%q) error = %v, want ErrUnknownShapeKind", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShapeKind(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseShapeKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindsRoundTripNames(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseShapeKind(k.String())
		if err != nil {
			t.Fatalf("ParseShapeKind(%q): %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseShapeKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
	if ShapeKind(-1).Valid() || kindCount.Valid() {
		t.Error("out-of-range kinds should be invalid")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := Diagram{
		Shapes: []Shape{
			Shape{ID: "a"}.At(10, 20),
			{ID: "b"},
		},
		Connections: []Connection{{Source: "a", Target: "b"}},
	}

	c := d.Clone()
	c.Shapes[0].Position.X = 99
	c.Shapes[1] = c.Shapes[1].At(1, 1)
	c.Connections[0].Label = "changed"

	if d.Shapes[0].Position.X != 10 {
		t.Errorf("original position mutated: %v", d.Shapes[0].Position)
	}
	if d.Shapes[1].Placed() {
		t.Error("original unplaced shape became placed")
	}
	if d.Connections[0].Label != "" {
		t.Error("original connection mutated")
	}
}

func TestShapePos(t *testing.T) {
	s := Shape{ID: "a"}
	if s.Placed() {
		t.Error("zero shape should be unplaced")
	}
	if got := s.Pos(); got != (Point{}) {
		t.Errorf("Pos() = %v, want origin", got)
	}

	origin := s.At(0, 0)
	if !origin.Placed() {
		t.Error("shape placed at origin should report Placed")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Diagram
		want error
	}{
		{
			name: "Valid",
			d: Diagram{
				Shapes:      []Shape{{ID: "a"}, {ID: "b"}},
				Connections: []Connection{{Source: "a", Target: "b"}, {Source: "a", Target: "a"}},
			},
		},
		{
			name: "EmptyID",
			d:    Diagram{Shapes: []Shape{{ID: ""}}},
			want: ErrInvalidShapeID,
		},
		{
			name: "DuplicateID",
			d:    Diagram{Shapes: []Shape{{ID: "a"}, {ID: "a"}}},
			want: ErrDuplicateShapeID,
		},
		{
			name: "Dangling",
			d: Diagram{
				Shapes:      []Shape{{ID: "a"}},
				Connections: []Connection{{Source: "a", Target: "ghost"}},
			},
			want: ErrDanglingConnection,
		},
		{
			name: "BadKind",
			d:    Diagram{Shapes: []Shape{{ID: "a", Type: ShapeKind(42)}}},
			want: ErrUnknownShapeKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
