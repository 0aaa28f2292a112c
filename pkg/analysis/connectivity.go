package analysis

// Connectivity summarizes degrees and connectedness.
type Connectivity struct {
	InDegree         map[string]int `json:"inDegree"`
	OutDegree        map[string]int `json:"outDegree"`
	MaxInDegree      int            `json:"maxInDegree"`
	MaxOutDegree     int            `json:"maxOutDegree"`
	AvgInDegree      float64        `json:"avgInDegree"`
	AvgOutDegree     float64        `json:"avgOutDegree"`
	IsConnected      bool           `json:"isConnected"`
	HasIsolatedNodes bool           `json:"hasIsolatedNodes"`
	// StronglyConnectedComponents counts components in which every shape
	// reaches every other shape along connection direction.
	StronglyConnectedComponents int `json:"stronglyConnectedComponents"`
}

func (a *analyzer) connectivity() *Connectivity {
	ids := a.g.IDs()
	c := &Connectivity{
		InDegree:  make(map[string]int, len(ids)),
		OutDegree: make(map[string]int, len(ids)),
	}

	var sumIn, sumOut int
	for _, id := range ids {
		in, out := a.g.InDegree(id), a.g.OutDegree(id)
		c.InDegree[id] = in
		c.OutDegree[id] = out
		c.MaxInDegree = max(c.MaxInDegree, in)
		c.MaxOutDegree = max(c.MaxOutDegree, out)
		sumIn += in
		sumOut += out
		if a.g.IsIsolated(id) {
			c.HasIsolatedNodes = true
		}
	}
	c.AvgInDegree = round2(ratio(float64(sumIn), float64(len(ids))))
	c.AvgOutDegree = round2(ratio(float64(sumOut), float64(len(ids))))
	c.IsConnected = len(a.components()) == 1
	c.StronglyConnectedComponents = len(stronglyConnected(a))
	return c
}

// stronglyConnected returns the strongly connected components of the graph
// using Tarjan's algorithm. Components are emitted in reverse topological
// order.
func stronglyConnected(a *analyzer) [][]string {
	var (
		index   = make(map[string]int, a.g.Len())
		low     = make(map[string]int, a.g.Len())
		onStack = make(map[string]bool, a.g.Len())
		stack   []string
		next    int
		sccs    [][]string
	)

	var visit func(id string)
	visit = func(id string) {
		index[id] = next
		low[id] = next
		next++
		stack = append(stack, id)
		onStack[id] = true

		for _, w := range a.g.Successors(id) {
			if _, seen := index[w]; !seen {
				visit(w)
				low[id] = min(low[id], low[w])
			} else if onStack[w] {
				low[id] = min(low[id], index[w])
			}
		}

		if low[id] == index[id] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == id {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, id := range a.g.IDs() {
		if _, seen := index[id]; !seen {
			visit(id)
		}
	}
	return sccs
}
