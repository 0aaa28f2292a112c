// Package observability lets callers watch the pipeline, the cache and the
// HTTP server without this module depending on a metrics or tracing backend.
//
// Each event category has an interface (PipelineHooks, CacheHooks,
// HTTPHooks) and a no-op implementation. main registers real implementations
// once at startup; the pipeline, the cache layer and the server read them
// through Pipeline, Cache and HTTP. [LogHooks] is the built-in backend and
// writes every event to a charmbracelet logger at debug level.
//
//	observability.SetPipelineHooks(promHooks)
//	...
//	observability.Pipeline().OnLayoutStart(ctx, "hierarchical", len(d.Shapes))
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks observes each pipeline stage. Every Complete call follows
// exactly one Start call for the same stage, and err is nil on success.
type PipelineHooks interface {
	OnAnalyzeStart(ctx context.Context, kind string, shapeCount int)
	OnAnalyzeComplete(ctx context.Context, kind string, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, algorithm string, shapeCount int)
	OnLayoutComplete(ctx context.Context, algorithm string, duration time.Duration, err error)
	OnExportStart(ctx context.Context, format string)
	OnExportComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks observes cache lookups. keyType is the key prefix used by the
// pipeline: "analysis", "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes requests served by internal/server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	// OnError fires before OnResponse for requests answered with an error body.
	OnError(ctx context.Context, method, path string, err error)
}

// NoopPipelineHooks discards pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnAnalyzeStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnAnalyzeComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                      {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)  {}
func (NoopPipelineHooks) OnExportStart(context.Context, string)                           {}
func (NoopPipelineHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards server events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// slot holds one registered implementation.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(h T, ok bool) {
	if !ok {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.def
	s.mu.Unlock()
}

var (
	pipelineSlot = &slot[PipelineHooks]{cur: NoopPipelineHooks{}, def: NoopPipelineHooks{}}
	cacheSlot    = &slot[CacheHooks]{cur: NoopCacheHooks{}, def: NoopCacheHooks{}}
	httpSlot     = &slot[HTTPHooks]{cur: NoopHTTPHooks{}, def: NoopHTTPHooks{}}
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h, h != nil) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h, h != nil) }

// SetHTTPHooks registers server hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h, h != nil) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the registered server hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
