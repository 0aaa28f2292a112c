package diagram_test

import (
	"fmt"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

func ExampleNewGraph() {
	d := diagram.Diagram{
		Shapes: []diagram.Shape{
			{ID: "start", Type: diagram.KindTerminator},
			{ID: "check", Type: diagram.KindDiamond},
			{ID: "done", Type: diagram.KindTerminator},
		},
		Connections: []diagram.Connection{
			{Source: "start", Target: "check"},
			{Source: "check", Target: "done", Label: "yes"},
			{Source: "check", Target: "start", Label: "no"},
		},
	}

	g := diagram.NewGraph(d)
	fmt.Println("Children of check:", g.Children("check"))
	fmt.Println("Parents of start:", g.Parents("start"))
	fmt.Println("Leaves:", g.Leaves())
	// Output:
	// Children of check: [done start]
	// Parents of start: [check]
	// Leaves: [done]
}

func ExampleLayers() {
	d := diagram.Diagram{
		Shapes: []diagram.Shape{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Connections: []diagram.Connection{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "c"},
			{Source: "c", Target: "d"},
		},
	}

	l := diagram.Layers(diagram.NewGraph(d))
	for i, level := range l.Levels {
		fmt.Println(i, level)
	}
	// Output:
	// 0 [a]
	// 1 [b c]
	// 2 [d]
}
