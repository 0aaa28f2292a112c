package diagram

import "slices"

// Graph is the adjacency derived from a [Diagram]. It is built once per
// analysis or layout call and never mutated afterwards.
//
// Connections whose source or target is not a shape of the diagram are
// dropped. When several shapes share an ID only the first is indexed.
type Graph struct {
	ids      []string
	index    map[string]int      // id -> position of its first shape in d.Shapes
	outgoing map[string][]string // id -> targets, one entry per connection
	incoming map[string][]string // id -> sources, one entry per connection
	edges    int
}

// NewGraph derives the adjacency of d.
func NewGraph(d Diagram) *Graph {
	g := &Graph{
		ids:      make([]string, 0, len(d.Shapes)),
		index:    make(map[string]int, len(d.Shapes)),
		outgoing: make(map[string][]string, len(d.Shapes)),
		incoming: make(map[string][]string, len(d.Shapes)),
	}
	for i, s := range d.Shapes {
		if _, dup := g.index[s.ID]; dup {
			continue
		}
		g.index[s.ID] = i
		g.ids = append(g.ids, s.ID)
	}
	for _, c := range d.Connections {
		if !g.Has(c.Source) || !g.Has(c.Target) {
			continue
		}
		g.outgoing[c.Source] = append(g.outgoing[c.Source], c.Target)
		g.incoming[c.Target] = append(g.incoming[c.Target], c.Source)
		g.edges++
	}
	return g
}

// IDs returns the shape IDs in diagram order. The slice must not be modified.
func (g *Graph) IDs() []string { return g.ids }

// Len returns the number of indexed shapes.
func (g *Graph) Len() int { return len(g.ids) }

// EdgeCount returns the number of connections whose endpoints both exist.
func (g *Graph) EdgeCount() int { return g.edges }

// Has reports whether id names a shape of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Index returns the position in d.Shapes of the first shape with id, or -1.
func (g *Graph) Index(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Children returns the targets of id's outgoing connections in connection
// order. A target appears once per connection, so parallel edges repeat it.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the sources of id's incoming connections.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing connections of id.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming connections of id.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Successors returns the distinct targets of id in first-seen order.
func (g *Graph) Successors(id string) []string { return dedupe(g.outgoing[id]) }

// Neighbors returns the distinct shapes adjacent to id in either direction,
// outgoing targets first.
func (g *Graph) Neighbors(id string) []string {
	both := make([]string, 0, len(g.outgoing[id])+len(g.incoming[id]))
	both = append(both, g.outgoing[id]...)
	both = append(both, g.incoming[id]...)
	return dedupe(both)
}

// Roots returns the shapes without incoming connections, in diagram order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.ids {
		if len(g.incoming[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns the shapes without outgoing connections, in diagram order.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, id := range g.ids {
		if len(g.outgoing[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// IsIsolated reports whether id has neither incoming nor outgoing connections.
func (g *Graph) IsIsolated(id string) bool {
	return len(g.outgoing[id]) == 0 && len(g.incoming[id]) == 0
}

func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return slices.Clone(ids)
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
