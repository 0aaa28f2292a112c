package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/diagramkit/pkg/analysis"
	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/observability"
)

// AnalyzeWithCacheInfo analyzes d and reports whether the report came from
// the cache. On timeout the partial report is returned with the error.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, d diagram.Diagram, opts Options) (analysis.Report, bool, error) {
	r.applyLogger(&opts)
	kind, aopts, err := opts.AnalysisOptions()
	if err != nil {
		return analysis.Report{}, false, err
	}
	if err := opts.ValidateDiagram(d); err != nil {
		return analysis.Report{}, false, err
	}
	hash, err := DiagramHash(d)
	if err != nil {
		return analysis.Report{}, false, err
	}
	key := r.Keyer.AnalysisKey(hash, opts.AnalysisKeyOpts(kind))

	var report analysis.Report
	if !opts.Refresh && r.lookup(ctx, key, cache.KeyTypeAnalysis, func(data []byte) error {
		return json.Unmarshal(data, &report)
	}) {
		return report, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, string(kind), len(d.Shapes))
	start := time.Now()

	sctx, cancel := stageContext(ctx, opts)
	defer cancel()
	report, err = analysis.AnalyzeContext(sctx, d, kind, aopts...)
	err = stageError(sctx, "analysis", err)

	hooks.OnAnalyzeComplete(ctx, string(kind), time.Since(start), err)
	if err != nil {
		return report, false, err
	}

	if report.Paths != nil && report.Paths.Truncated {
		opts.Logger.Warn("path enumeration truncated", "paths", report.Paths.TotalPaths)
	}
	if report.Cycles != nil && report.Cycles.Truncated {
		opts.Logger.Warn("cycle enumeration truncated", "cycles", report.Cycles.CycleCount)
	}

	r.storeJSON(ctx, key, cache.KeyTypeAnalysis, report, cache.TTLAnalysis)
	return report, false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, d diagram.Diagram, opts Options) (analysis.Report, error) {
	report, _, err := r.AnalyzeWithCacheInfo(ctx, d, opts)
	return report, err
}
