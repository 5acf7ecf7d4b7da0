package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every pipeline and cache event to a logger at debug level.
// Failed stages are logged at error level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks logging to l. A nil logger uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("load start", "path", path)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, path string, objects int, d time.Duration, err error) {
	h.complete("load", err, "path", path, "objects", objects, "duration", d)
}

func (h *LogHooks) OnExportStart(_ context.Context, objects int) {
	h.logger.Debug("export start", "objects", objects)
}

func (h *LogHooks) OnExportComplete(_ context.Context, groups, pools int, d time.Duration, err error) {
	h.complete("export", err, "groups", groups, "pools", pools, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, encoding string) {
	h.logger.Debug("render start", "encoding", encoding)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, lines, bytes int, d time.Duration, err error) {
	h.complete("render", err, "lines", lines, "bytes", bytes, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", shortKey(key))
}

func (h *LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", shortKey(key))
}

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", shortKey(key), "size", size)
}

func (h *LogHooks) complete(stage string, err error, kv ...any) {
	if err != nil {
		h.logger.Error(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" complete", kv...)
}

// shortKey trims hashed keys for readable logs.
func shortKey(key string) string {
	if len(key) > 24 {
		return key[:24] + "…"
	}
	return key
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
