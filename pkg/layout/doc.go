// Package layout assigns 2-D positions to the shapes of a [diagram.Diagram].
//
// # Overview
//
// [Run] takes a diagram, an [Algorithm] and functional options and returns a
// new diagram with updated positions. The input diagram is never modified,
// and shapes an algorithm does not reach keep their prior position.
//
//	out := layout.Run(d, layout.Hierarchical,
//	    layout.WithDirection(layout.LeftRight),
//	    layout.WithLevelSeparation(120),
//	)
//
// An unknown algorithm returns an unchanged copy. Empty and edgeless
// diagrams are valid input for every algorithm.
//
// # Algorithms
//
//   - [Hierarchical]: breadth-first levels from the root shapes, each level
//     centered against the widest one
//   - [Orthogonal]: hierarchical with wider separations for right-angle
//     edge routing (routing itself is left to the renderer)
//   - [ForceDirected]: Fruchterman-Reingold style simulation, O(n²) per
//     iteration
//   - [Organic]: force-directed with looser tuning and simplex-noise seeding
//   - [Circular]: evenly spaced on a circle
//   - [Tree]: rooted spanning trees, each parent centered over its subtree
//   - [Grid]: row-major cells
//
// Shapes that no root reaches are not moved by [Hierarchical], [Orthogonal]
// or [Tree]. A component in which every shape has an incoming connection has
// no root; callers that need full coverage should make sure every component
// has one.
//
// # Unplaced Shapes
//
// A shape with a nil position is unplaced. The force-directed algorithms
// seed unplaced shapes before simulating; placed shapes, including shapes at
// the origin, start where they are. Seeding is deterministic for a given
// seed ([WithSeed]).
//
// # Cancellation
//
// [RunContext] checks its context between force-directed iterations and
// returns the partially simulated diagram with ctx.Err().
package layout
