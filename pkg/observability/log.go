package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries
// to a logger.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// Install registers h for pipeline, cache and HTTP events.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnAnalyzeStart(_ context.Context, kind string, shapeCount int) {
	h.Logger.Debug("analysis started", "kind", kind, "shapes", shapeCount)
}

func (h *LogHooks) OnAnalyzeComplete(_ context.Context, kind string, d time.Duration, err error) {
	h.complete("analysis", "kind", kind, d, err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, algorithm string, shapeCount int) {
	h.Logger.Debug("layout started", "algorithm", algorithm, "shapes", shapeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, algorithm string, d time.Duration, err error) {
	h.complete("layout", "algorithm", algorithm, d, err)
}

func (h *LogHooks) OnExportStart(_ context.Context, format string) {
	h.Logger.Debug("export started", "format", format)
}

func (h *LogHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("export failed", "format", format, "error", err)
		return
	}
	h.Logger.Debug("export complete", "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Debug("request failed", "method", method, "path", path, "error", err)
}

func (h *LogHooks) complete(stage, key, value string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug(stage+" failed", key, value, "error", err)
		return
	}
	h.Logger.Debug(stage+" complete", key, value, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
