package analysis

// Clusters lists connected components under the configured [Reachability].
type Clusters struct {
	ClusterCount   int        `json:"clusterCount"`
	MaxClusterSize int        `json:"maxClusterSize"`
	AvgClusterSize float64    `json:"avgClusterSize"`
	Clusters       [][]string `json:"clusters"`
}

func (a *analyzer) clusters() *Clusters {
	comps := a.components()
	c := &Clusters{
		ClusterCount: len(comps),
		Clusters:     comps,
	}
	total := 0
	for _, comp := range comps {
		c.MaxClusterSize = max(c.MaxClusterSize, len(comp))
		total += len(comp)
	}
	c.AvgClusterSize = round2(ratio(float64(total), float64(len(comps))))
	return c
}

// components partitions the shapes by depth-first search, starting a new
// component at each unvisited shape in diagram order. Members are listed in
// visit order.
func (a *analyzer) components() [][]string {
	next := a.g.Neighbors
	if a.cfg.reachability == Forward {
		next = a.g.Successors
	}

	visited := make(map[string]bool, a.g.Len())
	comps := [][]string{}
	for _, start := range a.g.IDs() {
		if visited[start] {
			continue
		}
		var comp []string
		stack := []string{start}
		visited[start] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, id)
			nbrs := next(id)
			for i := len(nbrs) - 1; i >= 0; i-- {
				if !visited[nbrs[i]] {
					visited[nbrs[i]] = true
					stack = append(stack, nbrs[i])
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
