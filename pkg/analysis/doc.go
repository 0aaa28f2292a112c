// Package analysis computes structural metrics over a [diagram.Diagram].
//
// # Overview
//
// [Analyze] takes a diagram and a [Kind] and returns a [Report]. Each kind
// fills exactly one section of the report; [KindMetrics] fills all of them and
// adds an overall score:
//
//   - [KindComplexity]: counts, approximate density, cyclomatic complexity and
//     a 0-100 complexity score
//   - [KindConnectivity]: in/out degrees, connectedness, isolated shapes and
//     the number of strongly connected components
//   - [KindHierarchy]: breadth-first levels from the root shapes
//   - [KindCycles]: cycles found by depth-first search
//   - [KindPaths]: simple root-to-leaf paths
//   - [KindClusters]: connected components and their members
//
// Analysis never modifies the diagram and never fails on degenerate input.
// An empty diagram yields zero counts and zero ratios. Connections that
// reference missing shapes are ignored everywhere, including the connection
// count of the complexity section. An unknown kind yields an empty report.
//
// # Density
//
// Density is E / max(1, N(N-1)/2). The denominator is the edge count of a
// complete undirected graph, while connections are directed, so the value is
// an approximation that can exceed 1 on dense or multi-edge diagrams.
//
// # Connectivity Model
//
// Connectedness and clusters use the same [Reachability] mode. The default,
// [Weak], treats connections as undirected. [Forward] follows connections
// only in their direction and starts a new cluster at each unvisited shape in
// diagram order, so one weak component may be split into several clusters.
//
// The strongly connected component count is computed with Tarjan's algorithm
// and does not depend on the reachability mode.
//
// # Bounded Enumeration
//
// Cycle and path enumeration are exponential in the worst case. Paths never
// repeat a shape, so enumeration terminates on cyclic graphs, and both
// enumerations stop at a ceiling ([WithMaxPaths], [WithMaxCycles]) and set
// Truncated. [AnalyzeContext] additionally stops when its context is done.
//
// Cycles are reported once per back edge found by the search. Cycles that
// share shapes are each reported and are not deduplicated.
//
// # Concurrency
//
// All functions are safe for concurrent use on independent or shared
// diagrams; nothing is mutated.
package analysis
