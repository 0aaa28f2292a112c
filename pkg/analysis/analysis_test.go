package analysis

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

func build(ids []string, edges ...[2]string) diagram.Diagram {
	d := diagram.Diagram{}
	for _, id := range ids {
		d.Shapes = append(d.Shapes, diagram.Shape{ID: id})
	}
	for _, e := range edges {
		d.Connections = append(d.Connections, diagram.Connection{Source: e[0], Target: e[1]})
	}
	return d
}

func TestAnalyze_EmptyDiagram(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			r := Analyze(diagram.Diagram{}, kind)
			if r.Empty() {
				t.Fatalf("Analyze(%s) returned empty report", kind)
			}
			if c := r.Complexity; c != nil {
				if c.ShapeCount != 0 || c.ConnectionCount != 0 || c.Density != 0 ||
					c.AvgConnectionsPerShape != 0 || c.ShapeTypeDiversity != 0 || c.ComplexityScore != 0 {
					t.Errorf("complexity = %+v, want zeros", c)
				}
			}
			if c := r.Connectivity; c != nil {
				if c.MaxInDegree != 0 || c.AvgOutDegree != 0 || c.IsConnected || c.StronglyConnectedComponents != 0 {
					t.Errorf("connectivity = %+v, want zeros", c)
				}
			}
			if h := r.Hierarchy; h != nil && (h.MaxDepth != 0 || h.AvgShapesPerLevel != 0 || h.IsBalanced) {
				t.Errorf("hierarchy = %+v, want zeros", h)
			}
			if c := r.Cycles; c != nil && (c.HasCycles || c.CycleCount != 0) {
				t.Errorf("cycles = %+v, want none", c)
			}
			if p := r.Paths; p != nil && (p.TotalPaths != 0 || p.AvgPathLength != 0) {
				t.Errorf("paths = %+v, want none", p)
			}
			if c := r.Clusters; c != nil && (c.ClusterCount != 0 || c.AvgClusterSize != 0) {
				t.Errorf("clusters = %+v, want none", c)
			}
		})
	}
}

func TestAnalyze_UnknownKind(t *testing.T) {
	r := Analyze(build([]string{"a"}), Kind("entropy"))
	if !r.Empty() || r.Kind != "" {
		t.Errorf("unknown kind should return empty report, got %+v", r)
	}
}

func TestComplexity_Cyclomatic(t *testing.T) {
	tests := []struct {
		name string
		d    diagram.Diagram
	}{
		{"Empty", diagram.Diagram{}},
		{"Single", build([]string{"a"})},
		{"Disconnected", build([]string{"a", "b", "c", "d"})},
		{"Chain", build([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"})},
		{"Dangling", build([]string{"a"}, [2]string{"a", "ghost"})},
		{"MultiEdge", build([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"b", "b"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Analyze(tt.d, KindComplexity).Complexity
			want := c.ConnectionCount - c.ShapeCount + 2
			if c.CyclomaticComplexity != want {
				t.Errorf("CyclomaticComplexity = %d, want %d", c.CyclomaticComplexity, want)
			}
		})
	}
}

func TestComplexity_IgnoresDanglingConnections(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "z"}, [2]string{"q", "b"}, [2]string{"a", "b"}, [2]string{"a", "b"})

	c := Analyze(d, KindComplexity).Complexity

	if c.ConnectionCount != 2 {
		t.Errorf("ConnectionCount = %d, want 2", c.ConnectionCount)
	}
	if c.Density != 2 {
		t.Errorf("Density = %v, want 2", c.Density)
	}
	if c.CyclomaticComplexity != 2 {
		t.Errorf("CyclomaticComplexity = %d, want 2", c.CyclomaticComplexity)
	}
	if c.AvgConnectionsPerShape != 1 {
		t.Errorf("AvgConnectionsPerShape = %v, want 1", c.AvgConnectionsPerShape)
	}

	onlyDangling := build([]string{"a", "b"}, [2]string{"a", "z"}, [2]string{"q", "b"})
	if c := Analyze(onlyDangling, KindComplexity).Complexity; c.ConnectionCount != 0 || c.Density != 0 {
		t.Errorf("dangling only: ConnectionCount = %d, Density = %v, want 0, 0", c.ConnectionCount, c.Density)
	}
}

func TestComplexity_Values(t *testing.T) {
	d := build([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"})
	d.Shapes[1].Type = diagram.KindDiamond

	c := Analyze(d, KindComplexity).Complexity

	if c.Density != 0.67 {
		t.Errorf("Density = %v, want 0.67", c.Density)
	}
	if c.AvgConnectionsPerShape != 0.67 {
		t.Errorf("AvgConnectionsPerShape = %v, want 0.67", c.AvgConnectionsPerShape)
	}
	if c.ShapeTypeDiversity != 0.67 {
		t.Errorf("ShapeTypeDiversity = %v, want 0.67", c.ShapeTypeDiversity)
	}
	// shapes 6, connections 2, density 66.67 -> 24.89
	if c.ComplexityScore != 25 {
		t.Errorf("ComplexityScore = %d, want 25", c.ComplexityScore)
	}
}

func TestComplexity_ScoreClamped(t *testing.T) {
	var ids []string
	var edges [][2]string
	for i := range 60 {
		ids = append(ids, fmt.Sprintf("n%d", i))
	}
	for i := range 59 {
		for range 2 {
			edges = append(edges, [2]string{ids[i], ids[i+1]})
		}
	}
	c := Analyze(build(ids, edges...), KindComplexity).Complexity

	// shapes 100 (clamped), connections 100 (clamped), density 118/1770
	if c.ComplexityScore != 69 {
		t.Errorf("ComplexityScore = %d, want 69", c.ComplexityScore)
	}
}

func TestConnectivity(t *testing.T) {
	d := build([]string{"a", "b", "c", "lonely"},
		[2]string{"a", "b"},
		[2]string{"a", "c"},
		[2]string{"b", "c"},
		[2]string{"c", "ghost"},
	)

	c := Analyze(d, KindConnectivity).Connectivity

	if c.MaxInDegree != 2 || c.MaxOutDegree != 2 {
		t.Errorf("max degrees = %d/%d, want 2/2", c.MaxInDegree, c.MaxOutDegree)
	}
	if c.AvgInDegree != 0.75 || c.AvgOutDegree != 0.75 {
		t.Errorf("avg degrees = %v/%v, want 0.75/0.75", c.AvgInDegree, c.AvgOutDegree)
	}
	if c.OutDegree["c"] != 0 {
		t.Errorf("dangling connection counted: OutDegree[c] = %d", c.OutDegree["c"])
	}
	if !c.HasIsolatedNodes {
		t.Error("HasIsolatedNodes = false, want true")
	}
	if c.IsConnected {
		t.Error("IsConnected = true, want false")
	}
	if c.StronglyConnectedComponents != 4 {
		t.Errorf("StronglyConnectedComponents = %d, want 4", c.StronglyConnectedComponents)
	}
}

func TestConnectivity_ReachabilityModes(t *testing.T) {
	// b -> a, b -> c: one weak component, but forward search from a
	// reaches nothing.
	d := build([]string{"a", "b", "c"}, [2]string{"b", "a"}, [2]string{"b", "c"})

	weak := Analyze(d, KindMetrics)
	if !weak.Connectivity.IsConnected || weak.Clusters.ClusterCount != 1 {
		t.Errorf("weak: connected=%v clusters=%d, want true/1",
			weak.Connectivity.IsConnected, weak.Clusters.ClusterCount)
	}

	fwd := Analyze(d, KindMetrics, WithReachability(Forward))
	if fwd.Connectivity.IsConnected || fwd.Clusters.ClusterCount != 2 {
		t.Errorf("forward: connected=%v clusters=%d, want false/2",
			fwd.Connectivity.IsConnected, fwd.Clusters.ClusterCount)
	}
	if !slices.Equal(fwd.Clusters.Clusters[0], []string{"a"}) {
		t.Errorf("forward first cluster = %v, want [a]", fwd.Clusters.Clusters[0])
	}
}

func TestConnectivity_StronglyConnected(t *testing.T) {
	// {a,b,c} cycle, {d,e} cycle, f alone
	d := build([]string{"a", "b", "c", "d", "e", "f"},
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"},
		[2]string{"c", "d"},
		[2]string{"d", "e"}, [2]string{"e", "d"},
	)
	c := Analyze(d, KindConnectivity).Connectivity
	if c.StronglyConnectedComponents != 3 {
		t.Errorf("StronglyConnectedComponents = %d, want 3", c.StronglyConnectedComponents)
	}
}

func TestHierarchy(t *testing.T) {
	//      r
	//    / | \
	//   a  b  c
	//   |
	//   d
	d := build([]string{"r", "a", "b", "c", "d"},
		[2]string{"r", "a"}, [2]string{"r", "b"}, [2]string{"r", "c"},
		[2]string{"a", "d"},
	)

	h := Analyze(d, KindHierarchy).Hierarchy

	if h.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", h.MaxDepth)
	}
	if !slices.Equal(h.LevelSizes, []int{1, 3, 1}) {
		t.Errorf("LevelSizes = %v, want [1 3 1]", h.LevelSizes)
	}
	if h.AvgShapesPerLevel != 1.67 {
		t.Errorf("AvgShapesPerLevel = %v, want 1.67", h.AvgShapesPerLevel)
	}
	if h.RootCount != 1 || h.LeafCount != 3 {
		t.Errorf("roots/leaves = %d/%d, want 1/3", h.RootCount, h.LeafCount)
	}
	// level branching: 3, 1/3, 0 -> mean 1.11
	if h.AvgBranchingFactor != 1.11 {
		t.Errorf("AvgBranchingFactor = %v, want 1.11", h.AvgBranchingFactor)
	}
	// variance 0.89 >= 0.83
	if h.IsBalanced {
		t.Error("IsBalanced = true, want false")
	}
}

func TestHierarchy_Balanced(t *testing.T) {
	d := build([]string{"a", "b", "c", "d"},
		[2]string{"a", "b"}, [2]string{"c", "d"},
	)
	h := Analyze(d, KindHierarchy).Hierarchy
	if !h.IsBalanced {
		t.Errorf("two equal levels should be balanced: %+v", h)
	}
}

func TestHierarchy_CycleWithoutRoot(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"b", "a"})
	h := Analyze(d, KindHierarchy).Hierarchy
	if h.MaxDepth != 0 || h.RootCount != 0 {
		t.Errorf("rootless cycle: %+v, want zero depth", h)
	}
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name    string
		d       diagram.Diagram
		want    int
		lengths []int
	}{
		{
			name:    "Triangle",
			d:       build([]string{"A", "B", "C"}, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"}),
			want:    1,
			lengths: []int{3},
		},
		{
			name: "Acyclic",
			d:    build([]string{"A", "B", "C"}, [2]string{"A", "B"}, [2]string{"B", "C"}),
			want: 0,
		},
		{
			name:    "SelfLoop",
			d:       build([]string{"A"}, [2]string{"A", "A"}),
			want:    1,
			lengths: []int{1},
		},
		{
			name:    "ParallelBackEdges",
			d:       build([]string{"A", "B"}, [2]string{"A", "B"}, [2]string{"B", "A"}, [2]string{"B", "A"}),
			want:    1,
			lengths: []int{2},
		},
		{
			name: "Overlapping",
			d: build([]string{"A", "B", "C"},
				[2]string{"A", "B"}, [2]string{"B", "A"},
				[2]string{"B", "C"}, [2]string{"C", "A"},
			),
			want:    2,
			lengths: []int{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Analyze(tt.d, KindCycles).Cycles
			if c.HasCycles != (tt.want > 0) || c.CycleCount != tt.want {
				t.Fatalf("HasCycles=%v CycleCount=%d, want %d", c.HasCycles, c.CycleCount, tt.want)
			}
			for i, l := range tt.lengths {
				if c.Cycles[i].Length != l || len(c.Cycles[i].Nodes) != l {
					t.Errorf("cycle %d = %+v, want length %d", i, c.Cycles[i], l)
				}
			}
		})
	}
}

func TestCycles_TriangleNodes(t *testing.T) {
	d := build([]string{"A", "B", "C"}, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"})
	c := Analyze(d, KindCycles).Cycles
	if !slices.Equal(c.Cycles[0].Nodes, []string{"A", "B", "C"}) {
		t.Errorf("Nodes = %v, want [A B C]", c.Cycles[0].Nodes)
	}
}

func TestCycles_MaxCycles(t *testing.T) {
	d := build([]string{"A", "B", "C"},
		[2]string{"A", "A"}, [2]string{"B", "B"}, [2]string{"C", "C"},
	)
	c := Analyze(d, KindCycles, WithMaxCycles(2)).Cycles
	if c.CycleCount != 2 || !c.Truncated {
		t.Errorf("CycleCount=%d Truncated=%v, want 2/true", c.CycleCount, c.Truncated)
	}
}

func TestPaths_Diamond(t *testing.T) {
	d := build([]string{"A", "B", "C", "D"},
		[2]string{"A", "B"}, [2]string{"A", "C"},
		[2]string{"B", "D"}, [2]string{"C", "D"},
	)

	p := Analyze(d, KindPaths).Paths

	if p.TotalPaths != 2 {
		t.Fatalf("TotalPaths = %d, want 2", p.TotalPaths)
	}
	if p.MaxPathLength != 3 || p.AvgPathLength != 3 {
		t.Errorf("max/avg = %d/%v, want 3/3", p.MaxPathLength, p.AvgPathLength)
	}
	want := [][]string{{"A", "B", "D"}, {"A", "C", "D"}}
	if len(p.LongestPaths) != 2 {
		t.Fatalf("LongestPaths = %v, want %v", p.LongestPaths, want)
	}
	for i := range want {
		if !slices.Equal(p.LongestPaths[i], want[i]) {
			t.Errorf("LongestPaths[%d] = %v, want %v", i, p.LongestPaths[i], want[i])
		}
	}
}

func TestPaths_TerminatesOnCycles(t *testing.T) {
	// root -> a <-> b, b -> end
	d := build([]string{"root", "a", "b", "end"},
		[2]string{"root", "a"}, [2]string{"a", "b"}, [2]string{"b", "a"}, [2]string{"b", "end"},
	)
	p := Analyze(d, KindPaths).Paths
	if p.TotalPaths != 1 || p.MaxPathLength != 4 {
		t.Errorf("TotalPaths=%d MaxPathLength=%d, want 1/4", p.TotalPaths, p.MaxPathLength)
	}
}

func TestPaths_IsolatedRoot(t *testing.T) {
	p := Analyze(build([]string{"solo"}), KindPaths).Paths
	if p.TotalPaths != 1 || p.MaxPathLength != 1 {
		t.Errorf("TotalPaths=%d MaxPathLength=%d, want 1/1", p.TotalPaths, p.MaxPathLength)
	}
}

func TestPaths_MaxPaths(t *testing.T) {
	// a layered graph with 2^10 root-to-leaf paths
	var ids []string
	var edges [][2]string
	for i := range 11 {
		ids = append(ids, fmt.Sprintf("top%d", i), fmt.Sprintf("bot%d", i))
		if i > 0 {
			for _, from := range []string{"top", "bot"} {
				for _, to := range []string{"top", "bot"} {
					edges = append(edges, [2]string{fmt.Sprintf("%s%d", from, i-1), fmt.Sprintf("%s%d", to, i)})
				}
			}
		}
	}
	p := Analyze(build(ids, edges...), KindPaths, WithMaxPaths(100)).Paths
	if p.TotalPaths != 100 || !p.Truncated {
		t.Errorf("TotalPaths=%d Truncated=%v, want 100/true", p.TotalPaths, p.Truncated)
	}
}

func TestAnalyzeContext_Canceled(t *testing.T) {
	var ids []string
	var edges [][2]string
	for i := range 30 {
		ids = append(ids, fmt.Sprintf("top%d", i), fmt.Sprintf("bot%d", i))
		if i > 0 {
			for _, from := range []string{"top", "bot"} {
				for _, to := range []string{"top", "bot"} {
					edges = append(edges, [2]string{fmt.Sprintf("%s%d", from, i-1), fmt.Sprintf("%s%d", to, i)})
				}
			}
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AnalyzeContext(ctx, build(ids, edges...), KindPaths, WithMaxPaths(1<<30))
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestClusters_Disjoint(t *testing.T) {
	d := build([]string{"A", "B", "C", "D"}, [2]string{"A", "B"}, [2]string{"C", "D"})

	for _, mode := range []Reachability{Weak, Forward} {
		t.Run(mode.String(), func(t *testing.T) {
			c := Analyze(d, KindClusters, WithReachability(mode)).Clusters
			if c.ClusterCount != 2 {
				t.Fatalf("ClusterCount = %d, want 2", c.ClusterCount)
			}
			for i, members := range c.Clusters {
				if len(members) != 2 {
					t.Errorf("cluster %d = %v, want 2 members", i, members)
				}
			}
			if c.MaxClusterSize != 2 || c.AvgClusterSize != 2 {
				t.Errorf("max/avg = %d/%v, want 2/2", c.MaxClusterSize, c.AvgClusterSize)
			}
		})
	}
}

func TestMetrics_OverallScore(t *testing.T) {
	tests := []struct {
		name      string
		d         diagram.Diagram
		wantScore int
	}{
		// complexity 25, connected, balanced: 10 + 30 + 30
		{"Chain", build([]string{"a", "b", "c"}, [2]string{"a", "b"}, [2]string{"b", "c"}), 70},
		// complexity 0, not connected, not balanced: 0 + 15 + 21
		{"Empty", diagram.Diagram{}, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Analyze(tt.d, KindMetrics)
			if r.OverallScore == nil {
				t.Fatal("OverallScore not set")
			}
			if *r.OverallScore != tt.wantScore {
				t.Errorf("OverallScore = %d, want %d", *r.OverallScore, tt.wantScore)
			}
			if r.Complexity == nil || r.Connectivity == nil || r.Hierarchy == nil ||
				r.Cycles == nil || r.Paths == nil || r.Clusters == nil {
				t.Errorf("metrics report missing sections: %+v", r)
			}
		})
	}
}

func TestAnalyze_DoesNotMutate(t *testing.T) {
	d := build([]string{"a", "b"}, [2]string{"a", "b"}, [2]string{"b", "a"})
	d.Shapes[0] = d.Shapes[0].At(1, 2)
	before := d.Clone()

	Analyze(d, KindMetrics)

	if *d.Shapes[0].Position != *before.Shapes[0].Position || len(d.Connections) != len(before.Connections) {
		t.Error("Analyze mutated its input")
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind(" Cycles "); !ok || k != KindCycles {
		t.Errorf("ParseKind(Cycles) = %q, %v", k, ok)
	}
	if _, ok := ParseKind("entropy"); ok {
		t.Error("ParseKind(entropy) should fail")
	}
}
