// Package diagram provides the node/edge model shared by analysis, layout and
// export.
//
// # Overview
//
// A [Diagram] is an ordered list of [Shape] values (vertices) and an ordered
// list of [Connection] values (directed edges). Diagrams are plain values:
// builders assemble them, the analyzer reads them and the layout engine returns
// repositioned copies. Nothing in this package keeps a diagram alive beyond a
// single call.
//
// Shapes are identified by ID. Multiple connections between the same pair of
// shapes are allowed, and so are self-loops. Connections that reference an ID
// not present in the diagram are tolerated: every algorithm treats them as if
// they did not exist. Use [Diagram.Validate] when strict input checking is
// wanted.
//
// # Positions
//
// [Shape.Position] is a pointer. A nil position means the shape has not been
// placed yet, so a shape sitting exactly at the origin is a legitimately placed
// shape and is never mistaken for an unplaced one.
//
// # Derived Adjacency
//
// [NewGraph] derives the adjacency substrate all algorithms operate on:
//
//	g := diagram.NewGraph(d)
//	for _, id := range g.Roots() {
//	    fmt.Println(id, g.Children(id))
//	}
//
// [Layers] computes the breadth-first layering from root shapes that both the
// hierarchy analysis and the hierarchical layout rely on.
//
// # Serialization
//
// Diagrams use a simple JSON format:
//
//	{
//	  "shapes": [{"id": "start", "type": "terminator"}],
//	  "connections": [{"source": "start", "target": "end"}]
//	}
//
// See [ReadFile], [WriteFile], [Marshal] and [Unmarshal].
//
// # Concurrency
//
// Diagram values are not safe for concurrent mutation. [Diagram.Clone] gives
// each goroutine its own copy; [Graph] values are read-only once built.
package diagram
