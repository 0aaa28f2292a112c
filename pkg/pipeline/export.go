package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/export"
	"github.com/matzehuels/diagramkit/pkg/observability"
)

// ExportWithCacheInfo serializes d in every requested format. The returned
// map is keyed by format name. The boolean is true only when every artifact
// came from the cache.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	formats, eopts, err := opts.ExportOptions()
	if err != nil {
		return nil, false, err
	}
	if err := opts.ValidateDiagram(d); err != nil {
		return nil, false, err
	}
	hash, err := DiagramHash(d)
	if err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(formats))
	allCached := true
	hooks := observability.Pipeline()

	for _, f := range formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(f))
		if !opts.Refresh && r.lookup(ctx, key, cache.KeyTypeArtifact, func(data []byte) error {
			artifacts[string(f)] = data
			return nil
		}) {
			continue
		}
		allCached = false

		hooks.OnExportStart(ctx, string(f))
		start := time.Now()

		sctx, cancel := stageContext(ctx, opts)
		data, err := export.Export(sctx, d, f, eopts)
		err = stageError(sctx, "export", err)
		cancel()

		hooks.OnExportComplete(ctx, string(f), len(data), time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", f, err)
		}
		artifacts[string(f)] = data
		r.store(ctx, key, cache.KeyTypeArtifact, data, cache.TTLArtifact)
	}

	return artifacts, allCached, nil
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Export(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, d, opts)
	return artifacts, err
}
