package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

// Graphviz measures node sizes in inches and positions in points.
const pointsPerInch = 72.0

// ToDOT converts d to Graphviz DOT text. The result can be rendered with any
// Graphviz engine; [ToSVG] uses it internally.
func ToDOT(d diagram.Diagram, opts Options) string {
	return toDOT(d, opts, false)
}

// toDOT optionally pins every node at its shape position. Pinned output is
// meant for the neato engine, which honors pos="x,y!".
func toDOT(d diagram.Diagram, opts Options, pinned bool) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.leftRight() {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, fontsize=12];\n", opts.Styles.Edge())
	if pinned {
		buf.WriteString("  splines=true;\n")
	} else {
		buf.WriteString("  ranksep=0.5;\n")
		buf.WriteString("  nodesep=0.3;\n")
	}
	buf.WriteString("\n")

	for _, s := range uniqueShapes(d) {
		attrs := dotAttrs(s, opts.Styles.Shape(s.Type))
		if pinned {
			attrs = append(attrs, dotGeometry(s)...)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", s.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range edges(d) {
		if c.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", c.Source, c.Target, c.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.Source, c.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotAttrs(s diagram.Shape, st ShapeStyle) []string {
	shape, style := dotShape(s.Type)
	return []string{
		fmt.Sprintf("label=%q", s.DisplayLabel()),
		"shape=" + shape,
		fmt.Sprintf("style=%q", style),
		fmt.Sprintf("fillcolor=%q", st.Fill),
		fmt.Sprintf("color=%q", st.Stroke),
		fmt.Sprintf("fontcolor=%q", st.FontColor),
	}
}

// dotGeometry pins the node center. Graphviz's Y axis points up, so the
// diagram's Y is negated.
func dotGeometry(s diagram.Shape) []string {
	p, sz := s.Pos(), shapeSize(s)
	cx := p.X + sz.Width/2
	cy := -(p.Y + sz.Height/2)
	return []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(cx), fmtFloat(cy)),
		"width=" + fmtFloat(sz.Width/pointsPerInch),
		"height=" + fmtFloat(sz.Height/pointsPerInch),
		"fixedsize=true",
	}
}

func dotShape(k diagram.ShapeKind) (shape, style string) {
	switch k {
	case diagram.KindRectangle:
		return "box", "filled"
	case diagram.KindRounded:
		return "box", "rounded,filled"
	case diagram.KindDiamond:
		return "diamond", "filled"
	case diagram.KindEllipse:
		return "ellipse", "filled"
	case diagram.KindCircle:
		return "circle", "filled"
	case diagram.KindParallelogram:
		return "parallelogram", "filled"
	case diagram.KindHexagon:
		return "hexagon", "filled"
	case diagram.KindCylinder:
		return "cylinder", "filled"
	case diagram.KindDocument:
		return "folder", "filled"
	case diagram.KindTerminator:
		return "box", "rounded,filled,bold"
	case diagram.KindNote:
		return "note", "filled"
	case diagram.KindActor:
		return "doublecircle", "filled"
	default:
		return "box", "filled"
	}
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
