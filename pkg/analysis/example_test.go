package analysis_test

import (
	"fmt"

	"github.com/matzehuels/diagramkit/pkg/analysis"
	"github.com/matzehuels/diagramkit/pkg/diagram"
)

func ExampleAnalyze() {
	d := diagram.Diagram{
		Shapes: []diagram.Shape{
			{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"},
		},
		Connections: []diagram.Connection{
			{Source: "A", Target: "B"},
			{Source: "A", Target: "C"},
			{Source: "B", Target: "D"},
			{Source: "C", Target: "D"},
		},
	}

	paths := analysis.Analyze(d, analysis.KindPaths).Paths
	fmt.Println("paths:", paths.TotalPaths, "longest:", paths.MaxPathLength)
	for _, p := range paths.LongestPaths {
		fmt.Println(p)
	}
	// Output:
	// paths: 2 longest: 3
	// [A B D]
	// [A C D]
}

func ExampleWithReachability() {
	d := diagram.Diagram{
		Shapes: []diagram.Shape{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Connections: []diagram.Connection{
			{Source: "b", Target: "a"},
			{Source: "b", Target: "c"},
		},
	}

	weak := analysis.Analyze(d, analysis.KindClusters).Clusters
	fwd := analysis.Analyze(d, analysis.KindClusters, analysis.WithReachability(analysis.Forward)).Clusters
	fmt.Println("weak:", weak.Clusters)
	fmt.Println("forward:", fwd.Clusters)
	// Output:
	// weak: [[a b c]]
	// forward: [[a] [b c]]
}
