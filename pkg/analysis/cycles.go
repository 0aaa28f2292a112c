package analysis

import "slices"

// Cycle is a closed walk; the last shape connects back to the first.
type Cycle struct {
	Nodes  []string `json:"nodes"`
	Length int      `json:"length"`
}

// Cycles lists the cycles found by depth-first search.
type Cycles struct {
	HasCycles  bool    `json:"hasCycles"`
	CycleCount int     `json:"cycleCount"`
	Cycles     []Cycle `json:"cycles"`
	Truncated  bool    `json:"truncated,omitempty"`
}

// cycles runs one depth-first search per unvisited shape in diagram order.
// Each connection to a shape on the current recursion stack closes a cycle
// made of the path from that shape onward. A self-loop is a cycle of
// length 1.
func (a *analyzer) cycles() *Cycles {
	c := &Cycles{Cycles: []Cycle{}}
	visited := make(map[string]bool, a.g.Len())
	onStack := make(map[string]bool)

	var dfs func(id string, path []string)
	dfs = func(id string, path []string) {
		if a.stopped() {
			return
		}
		visited[id] = true
		onStack[id] = true
		path = append(slices.Clip(path), id)

		for _, next := range a.g.Successors(id) {
			if c.Truncated || a.err != nil {
				break
			}
			switch {
			case !visited[next]:
				dfs(next, path)
			case onStack[next]:
				if len(c.Cycles) >= a.cfg.maxCycles {
					c.Truncated = true
					continue
				}
				start := slices.Index(path, next)
				nodes := slices.Clone(path[start:])
				c.Cycles = append(c.Cycles, Cycle{Nodes: nodes, Length: len(nodes)})
			}
		}
		onStack[id] = false
	}

	for _, id := range a.g.IDs() {
		if !visited[id] && !c.Truncated && a.err == nil {
			dfs(id, nil)
		}
	}

	c.CycleCount = len(c.Cycles)
	c.HasCycles = c.CycleCount > 0
	return c
}
