package diagram

// Layering is the breadth-first level assignment computed by [Layers].
type Layering struct {
	// Levels holds the shapes of each level in discovery order.
	Levels [][]string
	// Level maps each reached shape to its level. Unreached shapes are absent.
	Level map[string]int
}

// Depth returns the number of levels.
func (l Layering) Depth() int { return len(l.Levels) }

// Reached reports whether id was assigned a level.
func (l Layering) Reached(id string) bool {
	_, ok := l.Level[id]
	return ok
}

// Layers assigns every shape reachable from a root (a shape without incoming
// connections) to its breadth-first depth. All roots start at level 0 and are
// seeded in diagram order.
//
// A shape is queued at most once, so cycles cannot cause repeated visits.
// Shapes that no root reaches, such as the members of a component where every
// shape has an incoming connection, receive no level.
//
// Time complexity is O(V + E).
func Layers(g *Graph) Layering {
	l := Layering{Level: make(map[string]int, g.Len())}
	queue := make([]string, 0, g.Len())
	for _, id := range g.Roots() {
		l.Level[id] = 0
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		level := l.Level[curr]
		for len(l.Levels) <= level {
			l.Levels = append(l.Levels, nil)
		}
		l.Levels[level] = append(l.Levels[level], curr)

		for _, child := range g.Children(curr) {
			if _, seen := l.Level[child]; seen {
				continue
			}
			l.Level[child] = level + 1
			queue = append(queue, child)
		}
	}
	return l
}
