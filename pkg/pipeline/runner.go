package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/observability"
)

// Runner executes pipeline stages with caching.
//
// The Runner is stateless apart from its cache and logger, so one Runner can
// serve concurrent requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs analyze → layout → export. Analysis runs on the input diagram;
// export runs on the positioned one.
func (r *Runner) Execute(ctx context.Context, d diagram.Diagram, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.ValidateDiagram(d); err != nil {
		return nil, err
	}
	hash, err := DiagramHash(d)
	if err != nil {
		return nil, err
	}

	result := &Result{
		DiagramHash: hash,
		Stats: Stats{
			ShapeCount:      len(d.Shapes),
			ConnectionCount: len(d.Connections),
		},
	}

	// Stage 1: Analyze
	start := time.Now()
	report, hit, err := r.AnalyzeWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Report = &report
	result.Stats.AnalyzeTime = time.Since(start)
	result.CacheInfo.AnalyzeHit = hit

	r.Logger.Info("analyzed diagram",
		"kind", report.Kind,
		"shapes", len(d.Shapes),
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	// Stage 2: Layout
	start = time.Now()
	positioned, hit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = positioned
	result.Stats.LayoutTime = time.Since(start)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"algorithm", opts.Algorithm,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Export
	start = time.Now()
	artifacts, hit, err := r.ExportWithCacheInfo(ctx, positioned, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(start)
	result.CacheInfo.ExportHit = hit

	r.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// DiagramHash returns the content hash used in cache keys.
func DiagramHash(d diagram.Diagram) (string, error) {
	data, err := diagram.Marshal(d)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidDiagram, err, "encode diagram")
	}
	return cache.Hash(data), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// stageContext applies the per-stage timeout.
func stageContext(ctx context.Context, opts Options) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return context.WithCancel(ctx)
}

// stageError turns an expired deadline into a TIMEOUT error. Cancellation is
// passed through unchanged.
func stageError(ctx context.Context, stage string, err error) error {
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s timed out", stage)
	}
	return err
}

// lookup reads key from the cache and decodes it into v. Any failure counts
// as a miss.
func (r *Runner) lookup(ctx context.Context, key, keyType string, decode func([]byte) error) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit || decode(data) != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// store writes data under key. Cache failures are logged, never returned.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) storeJSON(ctx context.Context, key, keyType string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Debug("cache encode failed", "type", keyType, "error", err)
		return
	}
	r.store(ctx, key, keyType, data, ttl)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
