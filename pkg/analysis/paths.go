package analysis

import "slices"

// Paths describes the simple paths from root shapes to dead ends. Length is
// measured in shapes, so a lone root is a path of length 1.
type Paths struct {
	TotalPaths    int        `json:"totalPaths"`
	MaxPathLength int        `json:"maxPathLength"`
	AvgPathLength float64    `json:"avgPathLength"`
	LongestPaths  [][]string `json:"longestPaths"`
	Truncated     bool       `json:"truncated,omitempty"`
}

// paths enumerates, for every root, each path that follows connections
// without repeating a shape and ends at a shape with no outgoing
// connections. Branches that can only continue into shapes already on the
// path are abandoned. Enumeration stops once the path ceiling is reached.
func (a *analyzer) paths() *Paths {
	p := &Paths{LongestPaths: [][]string{}}
	onPath := make(map[string]bool)
	var totalLen int

	record := func(path []string) {
		if p.TotalPaths >= a.cfg.maxPaths {
			p.Truncated = true
			return
		}
		p.TotalPaths++
		totalLen += len(path)
		switch {
		case len(path) > p.MaxPathLength:
			p.MaxPathLength = len(path)
			p.LongestPaths = [][]string{slices.Clone(path)}
		case len(path) == p.MaxPathLength && len(p.LongestPaths) < a.cfg.maxLongest:
			p.LongestPaths = append(p.LongestPaths, slices.Clone(path))
		}
	}

	var dfs func(id string, path []string)
	dfs = func(id string, path []string) {
		if p.Truncated || a.stopped() {
			return
		}
		path = append(path, id)
		next := a.g.Successors(id)
		if len(next) == 0 {
			record(path)
			return
		}
		onPath[id] = true
		for _, child := range next {
			if !onPath[child] {
				dfs(child, path)
			}
		}
		onPath[id] = false
	}

	for _, root := range a.g.Roots() {
		dfs(root, nil)
	}

	p.AvgPathLength = round2(ratio(float64(totalLen), float64(p.TotalPaths)))
	return p
}
