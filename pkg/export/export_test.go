package export

import (
	"bytes"
	"context"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/layout"
)

func sample() diagram.Diagram {
	return diagram.Diagram{
		Shapes: []diagram.Shape{
			{ID: "start", Type: diagram.KindTerminator, Label: "Start"},
			{ID: "check", Type: diagram.KindDiamond, Label: `Say "hi"?`},
			{ID: "done"},
		},
		Connections: []diagram.Connection{
			{Source: "start", Target: "check"},
			{Source: "check", Target: "done", Label: "yes"},
			{Source: "check", Target: "ghost"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"drawio", DrawIO, true},
		{"Draw.io", DrawIO, true},
		{"mmd", Mermaid, true},
		{" SVG ", SVG, true},
		{"json", JSON, true},
		{"png", Format("png"), false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(context.Background(), sample(), Format("png"), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestExport_JSON(t *testing.T) {
	out, err := Export(context.Background(), sample(), JSON, Options{})
	if err != nil {
		t.Fatal(err)
	}
	d, err := diagram.Unmarshal(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Shapes) != 3 || len(d.Connections) != 3 {
		t.Errorf("decoded %d shapes, %d connections", len(d.Shapes), len(d.Connections))
	}
}

func TestToDrawIO(t *testing.T) {
	d := sample()
	d.Shapes[0] = d.Shapes[0].At(10, 20)

	out, err := ToDrawIO(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte(xml.Header)) {
		t.Error("missing XML header")
	}

	var model MxGraphModel
	if err := xml.Unmarshal(out, &model); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}

	var vertices, edgeCells []MxCell
	for _, c := range model.Root.MxCell {
		switch {
		case c.Vertex == "1":
			vertices = append(vertices, c)
		case c.Edge == "1":
			edgeCells = append(edgeCells, c)
		}
	}
	if len(vertices) != 3 {
		t.Fatalf("vertices = %d, want 3", len(vertices))
	}
	if len(edgeCells) != 2 {
		t.Fatalf("edges = %d, want 2 (dangling connection dropped)", len(edgeCells))
	}

	start := vertices[0]
	if start.Value != "Start" || start.Geometry.X != 10 || start.Geometry.Y != 20 {
		t.Errorf("start cell = %+v %+v", start, *start.Geometry)
	}
	if !strings.Contains(start.Style, "arcSize=50") || !strings.Contains(start.Style, "fillColor=#d5e8d4") {
		t.Errorf("start style = %q", start.Style)
	}
	if vertices[2].Value != "done" {
		t.Errorf("unlabeled shape value = %q, want its ID", vertices[2].Value)
	}
	for _, v := range vertices {
		if v.Geometry.Width != diagram.DefaultShapeWidth || v.Geometry.Height != diagram.DefaultShapeHeight {
			t.Errorf("%s geometry = %+v", v.ID, *v.Geometry)
		}
	}
	if edgeCells[1].Value != "yes" || edgeCells[1].Source != vertices[1].ID || edgeCells[1].Target != vertices[2].ID {
		t.Errorf("labeled edge = %+v", edgeCells[1])
	}
}

func TestToDrawIO_UnplacedShapesGetDistinctPositions(t *testing.T) {
	out, err := ToDrawIO(sample(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var model MxGraphModel
	if err := xml.Unmarshal(out, &model); err != nil {
		t.Fatal(err)
	}
	seen := map[[2]float64]bool{}
	for _, c := range model.Root.MxCell {
		if c.Vertex != "1" {
			continue
		}
		p := [2]float64{c.Geometry.X, c.Geometry.Y}
		if seen[p] {
			t.Errorf("two vertices at %v", p)
		}
		seen[p] = true
	}
}

func TestToDrawIO_EveryKindHasAStyle(t *testing.T) {
	for _, k := range diagram.Kinds() {
		if k != diagram.KindRectangle && drawioShape(k) == drawioShape(diagram.KindRectangle) {
			t.Errorf("%s falls back to the rectangle style", k)
		}
	}
}

func TestToMermaid(t *testing.T) {
	out := ToMermaid(sample(), Options{})

	for _, want := range []string{
		"flowchart TD\n",
		`    start(["Start"])`,
		`    check{"Say #quot;hi#quot;?"}`,
		`    done["done"]`,
		"    start --> check\n",
		`    check -->|"yes"| done`,
		"    classDef diamond fill:#fff2cc,stroke:#d6b656,color:#000000",
		"    class check diamond",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ghost") {
		t.Error("dangling connection exported")
	}
}

func TestToMermaid_LeftRight(t *testing.T) {
	out := ToMermaid(sample(), Options{Direction: layout.LeftRight})
	if !strings.HasPrefix(out, "flowchart LR\n") {
		t.Errorf("got %q", out)
	}
}

func TestMermaidNode_AllKinds(t *testing.T) {
	want := map[diagram.ShapeKind]string{
		diagram.KindRectangle:     `["x"]`,
		diagram.KindRounded:       `("x")`,
		diagram.KindDiamond:       `{"x"}`,
		diagram.KindEllipse:       `(("x"))`,
		diagram.KindCircle:        `(("x"))`,
		diagram.KindParallelogram: `[/"x"/]`,
		diagram.KindHexagon:       `{{"x"}}`,
		diagram.KindCylinder:      `[("x")]`,
		diagram.KindDocument:      `>"x"]`,
		diagram.KindTerminator:    `(["x"])`,
		diagram.KindNote:          `[["x"]]`,
		diagram.KindActor:         `((("x")))`,
	}
	for _, k := range diagram.Kinds() {
		if got := mermaidNode(k, mermaidLabel("x")); got != want[k] {
			t.Errorf("%s: got %s, want %s", k, got, want[k])
		}
	}
}

func TestMermaidIDs(t *testing.T) {
	shapes := []diagram.Shape{{ID: "a b"}, {ID: "a_b"}, {ID: "end"}, {ID: "x-1"}}
	ids := mermaidIDs(shapes)

	want := map[string]string{"a b": "a_b", "a_b": "a_b_2", "end": "n_end", "x-1": "x_1"}
	for in, w := range want {
		if ids[in] != w {
			t.Errorf("id(%q) = %q, want %q", in, ids[in], w)
		}
	}
}

func TestToDOT(t *testing.T) {
	out := ToDOT(sample(), Options{Direction: layout.LeftRight})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"check" [label="Say \"hi\"?", shape=diamond`,
		`"start" [label="Start", shape=box, style="rounded,filled,bold"`,
		`"check" -> "done" [label="yes"];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pos=") {
		t.Error("plain DOT output carries positions")
	}
}

func TestToDOT_Pinned(t *testing.T) {
	d := diagram.Diagram{Shapes: []diagram.Shape{
		diagram.Shape{ID: "a", Size: diagram.Size{Width: 144, Height: 72}}.At(0, 0),
	}}
	out := toDOT(d, Options{}, true)
	for _, want := range []string{`pos="72,-36!"`, "width=2", "height=1", "fixedsize=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestToSVG(t *testing.T) {
	placed := layout.Run(sample(), layout.Hierarchical)
	for name, d := range map[string]diagram.Diagram{"unplaced": sample(), "placed": placed} {
		t.Run(name, func(t *testing.T) {
			out, err := Export(context.Background(), d, SVG, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Contains(out, []byte("<svg")) {
				t.Errorf("output is not SVG: %.200s", out)
			}
		})
	}
}

func TestToSVG_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ToSVG(ctx, sample(), Options{}); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("got %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("input without viewBox changed: %s", got)
	}
}

func TestStyles_Immutable(t *testing.T) {
	base := DefaultStyles()
	custom := base.WithShape(diagram.KindDiamond, ShapeStyle{Fill: "#000000"})

	if base.Shape(diagram.KindDiamond).Fill != "#fff2cc" {
		t.Error("WithShape modified its receiver")
	}
	if custom.Shape(diagram.KindDiamond).Fill != "#000000" {
		t.Error("WithShape did not apply")
	}
	if DefaultStyles().Shape(diagram.KindDiamond).Fill != "#fff2cc" {
		t.Error("DefaultStyles shares state between calls")
	}

	var zero Styles
	if zero.Shape(diagram.KindNote) != base.Shape(diagram.KindNote) || zero.Edge() != base.Edge() {
		t.Error("zero Styles does not match defaults")
	}
	if zero.WithEdge("red").Edge() != "red" || zero.Edge() == "red" {
		t.Error("WithEdge on zero value")
	}
}

func TestParseStyles(t *testing.T) {
	st, err := ParseStyles(map[string]ShapeStyle{"diamond": {Stroke: "#111111"}})
	if err != nil {
		t.Fatal(err)
	}
	got := st.Shape(diagram.KindDiamond)
	if got.Stroke != "#111111" || got.Fill != "#fff2cc" {
		t.Errorf("got %+v", got)
	}

	if _, err := ParseStyles(map[string]ShapeStyle{"blob": {}}); !errors.Is(err, errors.ErrCodeInvalidShapeKind) {
		t.Errorf("err = %v, want INVALID_SHAPE_KIND", err)
	}
}
