package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

// ToMermaid renders d as a Mermaid flowchart. Each shape kind that occurs in
// the diagram gets a classDef carrying its colors.
func ToMermaid(d diagram.Diagram, opts Options) string {
	shapes := uniqueShapes(d)
	ids := mermaidIDs(shapes)

	var buf bytes.Buffer
	if opts.leftRight() {
		buf.WriteString("flowchart LR\n")
	} else {
		buf.WriteString("flowchart TD\n")
	}

	members := make(map[diagram.ShapeKind][]string)
	var kinds []diagram.ShapeKind
	for _, s := range shapes {
		id := ids[s.ID]
		fmt.Fprintf(&buf, "    %s%s\n", id, mermaidNode(s.Type, mermaidLabel(s.DisplayLabel())))
		if _, ok := members[s.Type]; !ok {
			kinds = append(kinds, s.Type)
		}
		members[s.Type] = append(members[s.Type], id)
	}

	for _, c := range edges(d) {
		if c.Label != "" {
			fmt.Fprintf(&buf, "    %s -->|%s| %s\n", ids[c.Source], mermaidLabel(c.Label), ids[c.Target])
		} else {
			fmt.Fprintf(&buf, "    %s --> %s\n", ids[c.Source], ids[c.Target])
		}
	}

	styles := opts.Styles
	for _, k := range kinds {
		st := styles.Shape(k)
		fmt.Fprintf(&buf, "    classDef %s fill:%s,stroke:%s,color:%s\n", k, st.Fill, st.Stroke, st.FontColor)
		fmt.Fprintf(&buf, "    class %s %s\n", strings.Join(members[k], ","), k)
	}
	return buf.String()
}

func mermaidNode(k diagram.ShapeKind, label string) string {
	switch k {
	case diagram.KindRectangle:
		return "[" + label + "]"
	case diagram.KindRounded:
		return "(" + label + ")"
	case diagram.KindDiamond:
		return "{" + label + "}"
	case diagram.KindEllipse, diagram.KindCircle:
		return "((" + label + "))"
	case diagram.KindParallelogram:
		return "[/" + label + "/]"
	case diagram.KindHexagon:
		return "{{" + label + "}}"
	case diagram.KindCylinder:
		return "[(" + label + ")]"
	case diagram.KindDocument:
		return ">" + label + "]"
	case diagram.KindTerminator:
		return "([" + label + "])"
	case diagram.KindNote:
		return "[[" + label + "]]"
	case diagram.KindActor:
		return "(((" + label + ")))"
	default:
		return "[" + label + "]"
	}
}

// mermaidLabel quotes a label, escaping characters Mermaid would otherwise
// parse as syntax.
func mermaidLabel(s string) string {
	r := strings.NewReplacer(`"`, "#quot;", "\n", "<br/>", "\r", "")
	return `"` + r.Replace(s) + `"`
}

// mermaidIDs assigns every shape a node identifier made of letters, digits and
// underscores. Collisions and reserved words get a numeric suffix or prefix.
func mermaidIDs(shapes []diagram.Shape) map[string]string {
	ids := make(map[string]string, len(shapes))
	used := make(map[string]bool, len(shapes))
	for _, s := range shapes {
		base := sanitizeID(s.ID)
		id := base
		for n := 2; used[id]; n++ {
			id = base + "_" + strconv.Itoa(n)
		}
		used[id] = true
		ids[s.ID] = id
	}
	return ids
}

func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	id := b.String()
	switch strings.ToLower(id) {
	case "", "end", "graph", "flowchart", "subgraph", "class", "classdef", "style", "click":
		return "n_" + id
	}
	return id
}
