package layout

import "github.com/matzehuels/diagramkit/pkg/diagram"

// tree builds one spanning tree per root by depth-first search, attaching a
// shape to the first parent that reaches it. A leaf is one unit wide, an
// internal shape is as wide as its children combined and sits centered over
// them. Trees are placed side by side in root order.
func tree(g *diagram.Graph, cfg config) map[string]diagram.Point {
	children := make(map[string][]string)
	claimed := make(map[string]bool)

	var attach func(id string)
	attach = func(id string) {
		for _, child := range g.Successors(id) {
			if claimed[child] {
				continue
			}
			claimed[child] = true
			children[id] = append(children[id], child)
			attach(child)
		}
	}

	roots := g.Roots()
	for _, root := range roots {
		claimed[root] = true
	}
	for _, root := range roots {
		attach(root)
	}

	widths := make(map[string]int, len(claimed))
	var width func(id string) int
	width = func(id string) int {
		w := 0
		for _, child := range children[id] {
			w += width(child)
		}
		w = max(w, 1)
		widths[id] = w
		return w
	}

	pos := make(map[string]diagram.Point, len(claimed))
	var position func(id string, start, depth int)
	position = func(id string, start, depth int) {
		center := float64(start) + float64(widths[id])/2 - 0.5
		along := cfg.margin + center*cfg.siblingSeparation
		across := cfg.margin + float64(depth)*cfg.levelSeparation
		pos[id] = orient(cfg.direction, along, across)

		offset := start
		for _, child := range children[id] {
			position(child, offset, depth+1)
			offset += widths[child]
		}
	}

	start := 0
	for _, root := range roots {
		width(root)
		position(root, start, 0)
		start += widths[root]
	}
	return pos
}
