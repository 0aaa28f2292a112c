package analysis

import "math"

// Complexity summarizes diagram size and density.
type Complexity struct {
	ShapeCount int `json:"shapeCount"`
	// ConnectionCount excludes connections to missing shapes. Parallel
	// connections and self-loops count once each.
	ConnectionCount int `json:"connectionCount"`
	// Density is E / max(1, N(N-1)/2), an approximation for directed graphs.
	Density float64 `json:"density"`
	// CyclomaticComplexity is E - N + 2 and may be negative.
	CyclomaticComplexity   int     `json:"cyclomaticComplexity"`
	AvgConnectionsPerShape float64 `json:"avgConnectionsPerShape"`
	ShapeTypeDiversity     float64 `json:"shapeTypeDiversity"`
	// ComplexityScore is the rounded mean of three sub-scores, each
	// clamped to 100: shapes/50, connections/100 and density.
	ComplexityScore int `json:"complexityScore"`
}

func (a *analyzer) complexity() *Complexity {
	n := len(a.d.Shapes)
	e := a.g.EdgeCount()

	types := make(map[string]bool)
	for _, s := range a.d.Shapes {
		types[s.Type.String()] = true
	}

	density := ratio(float64(e), float64(n*(n-1))/2)
	shapeScore := clamp100(float64(n) / 50 * 100)
	connScore := clamp100(float64(e) / 100 * 100)
	densityScore := clamp100(density * 100)

	c := &Complexity{
		ShapeCount:           n,
		ConnectionCount:      e,
		Density:              round2(density),
		CyclomaticComplexity: e - n + 2,
		ComplexityScore:      int(math.Round((shapeScore + connScore + densityScore) / 3)),
	}
	if n > 0 {
		c.AvgConnectionsPerShape = round2(float64(e) / float64(n))
		c.ShapeTypeDiversity = round2(float64(len(types)) / float64(n))
	}
	return c
}
