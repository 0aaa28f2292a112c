// Package export serializes diagrams into formats other tools understand.
//
// # Formats
//
//   - [DrawIO]: mxGraphModel XML that opens directly in draw.io / diagrams.net
//   - [Mermaid]: flowchart text for Markdown renderers
//   - [DOT]: Graphviz digraph text
//   - [SVG]: the DOT output rendered through Graphviz
//   - [JSON]: the canonical diagram encoding from package diagram
//
// All formats go through [Export]:
//
//	out, err := export.Export(ctx, d, export.Mermaid, export.Options{})
//
// # Positions
//
// draw.io needs coordinates for every vertex. Shapes that have not been placed
// are given a grid position so the file still opens cleanly. SVG output pins
// placed shapes at their coordinates and lets Graphviz lay out a diagram in
// which no shape is placed at all. Mermaid and DOT text never carry
// coordinates.
//
// # Styles
//
// Colors come from a [Styles] value. [DefaultStyles] returns a fresh table and
// [Styles.WithShape] returns a modified copy, so a table handed to one export
// can never be changed underneath another.
package export
