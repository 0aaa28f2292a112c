package layout

import "github.com/matzehuels/diagramkit/pkg/diagram"

// hierarchical spreads each breadth-first level along one axis and stacks
// the levels along the other. Levels narrower than the widest one are
// centered against it.
func hierarchical(g *diagram.Graph, cfg config) map[string]diagram.Point {
	l := diagram.Layers(g)

	widest := 0
	for _, level := range l.Levels {
		widest = max(widest, len(level))
	}

	pos := make(map[string]diagram.Point, len(l.Level))
	for depth, level := range l.Levels {
		offset := float64(widest-len(level)) * cfg.nodeSeparation / 2
		across := cfg.margin + float64(depth)*cfg.levelSeparation
		for i, id := range level {
			along := cfg.margin + offset + float64(i)*cfg.nodeSeparation
			pos[id] = orient(cfg.direction, along, across)
		}
	}
	return pos
}
