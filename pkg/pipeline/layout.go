package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/observability"
)

// LayoutWithCacheInfo positions d and reports whether the result came from
// the cache. On timeout the diagram as positioned so far is returned with
// the error.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d diagram.Diagram, opts Options) (diagram.Diagram, bool, error) {
	r.applyLogger(&opts)
	alg, lopts, err := opts.LayoutOptions()
	if err != nil {
		return diagram.Diagram{}, false, err
	}
	if err := opts.ValidateDiagram(d); err != nil {
		return diagram.Diagram{}, false, err
	}
	hash, err := DiagramHash(d)
	if err != nil {
		return diagram.Diagram{}, false, err
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts(alg))

	// Cached layouts are stored exactly as computed. Decoding skips
	// diagram.Read so unsized shapes stay unsized on a hit too.
	var positioned diagram.Diagram
	if !opts.Refresh && r.lookup(ctx, key, cache.KeyTypeLayout, func(data []byte) error {
		positioned = diagram.Diagram{}
		return json.Unmarshal(data, &positioned)
	}) {
		return positioned, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(alg), len(d.Shapes))
	start := time.Now()

	sctx, cancel := stageContext(ctx, opts)
	defer cancel()
	positioned, err = layout.RunContext(sctx, d, alg, lopts...)
	err = stageError(sctx, "layout", err)

	hooks.OnLayoutComplete(ctx, string(alg), time.Since(start), err)
	if err != nil {
		return positioned, false, err
	}

	if data, err := diagram.Marshal(positioned); err == nil {
		r.store(ctx, key, cache.KeyTypeLayout, data, cache.TTLLayout)
	}
	return positioned, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Layout(ctx context.Context, d diagram.Diagram, opts Options) (diagram.Diagram, error) {
	positioned, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return positioned, err
}
