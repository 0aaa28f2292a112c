package analysis

import "github.com/matzehuels/diagramkit/pkg/diagram"

// Hierarchy describes the breadth-first levels below the root shapes.
// Shapes that no root reaches are excluded from level statistics.
type Hierarchy struct {
	MaxDepth           int     `json:"maxDepth"`
	LevelSizes         []int   `json:"levelSizes"`
	AvgShapesPerLevel  float64 `json:"avgShapesPerLevel"`
	RootCount          int     `json:"rootCount"`
	LeafCount          int     `json:"leafCount"`
	AvgBranchingFactor float64 `json:"avgBranchingFactor"`
	// IsBalanced is true when the variance of level sizes is below half
	// their mean.
	IsBalanced bool `json:"isBalanced"`
}

func (a *analyzer) hierarchy() *Hierarchy {
	l := diagram.Layers(a.g)
	h := &Hierarchy{
		MaxDepth:   l.Depth(),
		LevelSizes: make([]int, l.Depth()),
		RootCount:  len(a.g.Roots()),
		LeafCount:  len(a.g.Leaves()),
	}

	sizes := make([]float64, l.Depth())
	branching := make([]float64, l.Depth())
	for i, level := range l.Levels {
		h.LevelSizes[i] = len(level)
		sizes[i] = float64(len(level))
		var out int
		for _, id := range level {
			out += a.g.OutDegree(id)
		}
		branching[i] = ratio(float64(out), float64(len(level)))
	}

	m := mean(sizes)
	h.AvgShapesPerLevel = round2(m)
	h.AvgBranchingFactor = round2(mean(branching))
	h.IsBalanced = variance(sizes) < 0.5*m
	return h
}
