package analysis

import (
	"context"
	"strings"

	"github.com/matzehuels/diagramkit/pkg/diagram"
)

// Kind selects which analysis to run.
type Kind string

const (
	KindComplexity   Kind = "complexity"
	KindConnectivity Kind = "connectivity"
	KindHierarchy    Kind = "hierarchy"
	KindCycles       Kind = "cycles"
	KindPaths        Kind = "paths"
	KindClusters     Kind = "clusters"
	KindMetrics      Kind = "metrics"
)

// Kinds returns every supported analysis kind.
func Kinds() []Kind {
	return []Kind{
		KindComplexity,
		KindConnectivity,
		KindHierarchy,
		KindCycles,
		KindPaths,
		KindClusters,
		KindMetrics,
	}
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind normalizes s and reports whether it names a supported kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.Valid()
}

// Report holds the result of an analysis. Only the sections for the
// requested kind are set.
type Report struct {
	Kind         Kind          `json:"kind,omitempty"`
	Complexity   *Complexity   `json:"complexity,omitempty"`
	Connectivity *Connectivity `json:"connectivity,omitempty"`
	Hierarchy    *Hierarchy    `json:"hierarchy,omitempty"`
	Cycles       *Cycles       `json:"cycles,omitempty"`
	Paths        *Paths        `json:"paths,omitempty"`
	Clusters     *Clusters     `json:"clusters,omitempty"`
	OverallScore *int          `json:"overallScore,omitempty"`
}

// Empty reports whether no section is set.
func (r Report) Empty() bool {
	return r.Complexity == nil && r.Connectivity == nil && r.Hierarchy == nil &&
		r.Cycles == nil && r.Paths == nil && r.Clusters == nil && r.OverallScore == nil
}

// Analyze runs the analysis of the given kind over d. It never fails; an
// unknown kind returns an empty Report.
func Analyze(d diagram.Diagram, kind Kind, opts ...Option) Report {
	r, _ := AnalyzeContext(context.Background(), d, kind, opts...)
	return r
}

// AnalyzeContext is like [Analyze] but stops cycle and path enumeration when
// ctx is done. On cancellation it returns the partial report together with
// ctx.Err().
func AnalyzeContext(ctx context.Context, d diagram.Diagram, kind Kind, opts ...Option) (Report, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	a := &analyzer{
		ctx: ctx,
		d:   d,
		g:   diagram.NewGraph(d),
		cfg: cfg,
	}

	var r Report
	if !kind.Valid() {
		return r, nil
	}
	r.Kind = kind

	switch kind {
	case KindComplexity:
		r.Complexity = a.complexity()
	case KindConnectivity:
		r.Connectivity = a.connectivity()
	case KindHierarchy:
		r.Hierarchy = a.hierarchy()
	case KindCycles:
		r.Cycles = a.cycles()
	case KindPaths:
		r.Paths = a.paths()
	case KindClusters:
		r.Clusters = a.clusters()
	case KindMetrics:
		r.Complexity = a.complexity()
		r.Connectivity = a.connectivity()
		r.Hierarchy = a.hierarchy()
		r.Cycles = a.cycles()
		r.Paths = a.paths()
		r.Clusters = a.clusters()
		score := overallScore(r.Complexity.ComplexityScore, r.Connectivity.IsConnected, r.Hierarchy.IsBalanced)
		r.OverallScore = &score
	}
	return r, a.err
}

// checkEvery is how many search steps pass between context checks.
const checkEvery = 1024

type analyzer struct {
	ctx   context.Context
	d     diagram.Diagram
	g     *diagram.Graph
	cfg   config
	steps int
	err   error
}

// stopped counts a search step and reports whether enumeration must stop.
func (a *analyzer) stopped() bool {
	if a.err != nil {
		return true
	}
	a.steps++
	if a.steps%checkEvery == 0 {
		a.err = a.ctx.Err()
	}
	return a.err != nil
}
