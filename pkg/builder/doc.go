// Package builder assembles diagrams programmatically.
//
// [Builder] offers a fluent API for hand-built diagrams:
//
//	b := builder.New()
//	start := b.Shape(diagram.KindTerminator, "Start")
//	work := b.Shape(diagram.KindRectangle, "Work")
//	d, err := b.Connect(start, work).Build()
//
// Shapes added without an ID receive a random UUID. [Linear], [Decision] and
// [Swimlane] produce common flowchart patterns with stable, readable IDs.
package builder
