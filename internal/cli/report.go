package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/diagramkit/pkg/analysis"
)

// reportSection is one titled block of metric rows.
type reportSection struct {
	Title string
	Rows  [][]string
}

// reportSections flattens the sections present in r into metric/value rows.
func reportSections(r analysis.Report) []reportSection {
	var out []reportSection
	if c := r.Complexity; c != nil {
		out = append(out, reportSection{"Complexity", [][]string{
			{"shapes", strconv.Itoa(c.ShapeCount)},
			{"connections", strconv.Itoa(c.ConnectionCount)},
			{"density", fmtMetric(c.Density)},
			{"cyclomatic", strconv.Itoa(c.CyclomaticComplexity)},
			{"avg connections", fmtMetric(c.AvgConnectionsPerShape)},
			{"type diversity", fmtMetric(c.ShapeTypeDiversity)},
			{"score", strconv.Itoa(c.ComplexityScore)},
		}})
	}
	if c := r.Connectivity; c != nil {
		out = append(out, reportSection{"Connectivity", [][]string{
			{"max in-degree", strconv.Itoa(c.MaxInDegree)},
			{"max out-degree", strconv.Itoa(c.MaxOutDegree)},
			{"avg in-degree", fmtMetric(c.AvgInDegree)},
			{"avg out-degree", fmtMetric(c.AvgOutDegree)},
			{"connected", strconv.FormatBool(c.IsConnected)},
			{"isolated shapes", strconv.FormatBool(c.HasIsolatedNodes)},
			{"strong components", strconv.Itoa(c.StronglyConnectedComponents)},
		}})
	}
	if h := r.Hierarchy; h != nil {
		out = append(out, reportSection{"Hierarchy", [][]string{
			{"max depth", strconv.Itoa(h.MaxDepth)},
			{"level sizes", joinInts(h.LevelSizes)},
			{"avg per level", fmtMetric(h.AvgShapesPerLevel)},
			{"roots", strconv.Itoa(h.RootCount)},
			{"leaves", strconv.Itoa(h.LeafCount)},
			{"branching", fmtMetric(h.AvgBranchingFactor)},
			{"balanced", strconv.FormatBool(h.IsBalanced)},
		}})
	}
	if c := r.Cycles; c != nil {
		rows := [][]string{{"cycles", withTruncation(c.CycleCount, c.Truncated)}}
		for i, cy := range c.Cycles {
			if i == 5 {
				rows = append(rows, []string{"", fmt.Sprintf("… %d more", len(c.Cycles)-i)})
				break
			}
			rows = append(rows, []string{"", strings.Join(cy.Nodes, " → ")})
		}
		out = append(out, reportSection{"Cycles", rows})
	}
	if p := r.Paths; p != nil {
		rows := [][]string{
			{"paths", withTruncation(p.TotalPaths, p.Truncated)},
			{"longest", strconv.Itoa(p.MaxPathLength)},
			{"average", fmtMetric(p.AvgPathLength)},
		}
		for _, path := range p.LongestPaths {
			rows = append(rows, []string{"", strings.Join(path, " → ")})
		}
		out = append(out, reportSection{"Paths", rows})
	}
	if c := r.Clusters; c != nil {
		out = append(out, reportSection{"Clusters", [][]string{
			{"clusters", strconv.Itoa(c.ClusterCount)},
			{"largest", strconv.Itoa(c.MaxClusterSize)},
			{"average size", fmtMetric(c.AvgClusterSize)},
		}})
	}
	if r.OverallScore != nil {
		out = append(out, reportSection{"Overall", [][]string{
			{"score", strconv.Itoa(*r.OverallScore)},
		}})
	}
	return out
}

func fmtMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func withTruncation(n int, truncated bool) string {
	if truncated {
		return strconv.Itoa(n) + "+"
	}
	return strconv.Itoa(n)
}

// printReport prints every section of r as a table.
func printReport(r analysis.Report) {
	sections := reportSections(r)
	if len(sections) == 0 {
		printWarning("Report is empty")
		return
	}
	for i, s := range sections {
		if i > 0 {
			printNewline()
		}
		printSection(s.Title)
		fmt.Println(renderTable([]string{"Metric", "Value"}, s.Rows))
	}
}
