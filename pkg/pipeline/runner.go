package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pandaegg/pkg/cache"
	"github.com/matzehuels/pandaegg/pkg/egg"
	"github.com/matzehuels/pandaegg/pkg/errors"
	"github.com/matzehuels/pandaegg/pkg/export"
	eggio "github.com/matzehuels/pandaegg/pkg/io"
	"github.com/matzehuels/pandaegg/pkg/observability"
	"github.com/matzehuels/pandaegg/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete load → export → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	data, err := readInput(opts.Input)
	if err != nil {
		return nil, err
	}
	result := &Result{SceneHash: cache.Hash(data)}
	cacheKey := r.Keyer.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if art, lines, ok := decodeArtifact(cached, opts.Encoding); ok {
				observability.Cache().OnCacheHit(ctx, cacheKey)
				art.restore(result)
				result.Lines = lines
				result.CacheHit = true
				result.Stats.Lines = len(lines)
				opts.Logger.Debug("cache hit", "input", opts.Input)
				return result, nil
			}
			// If decoding fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKey)
	}

	// Stage 1: Load
	loadStart := time.Now()
	s, err := r.LoadBytes(ctx, opts.Input, data, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Objects = len(s.Objects)

	opts.Logger.Info("loaded scene",
		"scene", s.Name,
		"objects", len(s.Objects),
		"duration", result.Stats.LoadTime)

	// Stage 2: Export
	exportStart := time.Now()
	exported, err := r.Export(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Document = exported.Document
	result.Skipped = exported.Skipped
	result.Stats.ExportTime = time.Since(exportStart)
	result.Stats.Groups = exported.Groups
	result.Stats.Pools = exported.Pools

	opts.Logger.Info("built entry tree",
		"groups", exported.Groups,
		"pools", exported.Pools,
		"duration", result.Stats.ExportTime)

	// Stage 3: Render
	renderStart := time.Now()
	lines, encoded, err := r.Render(ctx, exported.Document, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Lines = lines
	result.Data = encoded
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Lines = len(lines)
	result.Stats.Bytes = len(encoded)

	opts.Logger.Info("rendered document",
		"lines", len(lines),
		"encoding", opts.Encoding,
		"duration", result.Stats.RenderTime)

	// Cache the result
	if cached, err := newArtifact(result).encode(); err != nil {
		opts.Logger.Warn("cache encode failed", "err", err)
	} else if err := r.Cache.Set(ctx, cacheKey, cached, opts.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheKey, len(cached))
	}

	return result, nil
}

// Load reads and decodes the scene named by opts.Input without exporting it.
func (r *Runner) Load(ctx context.Context, opts Options) (*scene.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	data, err := readInput(opts.Input)
	if err != nil {
		return nil, err
	}
	return r.LoadBytes(ctx, opts.Input, data, opts.Format)
}

// LoadBytes decodes scene data read from path. The scene is named after the
// file when the data does not name it.
func (r *Runner) LoadBytes(ctx context.Context, path string, data []byte, format string) (s *scene.Scene, err error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)
	defer func() {
		objects := 0
		if s != nil {
			objects = len(s.Objects)
		}
		observability.Pipeline().OnLoadComplete(ctx, path, objects, time.Since(start), err)
	}()

	s, err = scene.Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = scene.NameFromPath(path)
	}
	return s, nil
}

// Export builds the Entry tree for s.
func (r *Runner) Export(ctx context.Context, s *scene.Scene, opts Options) (res *export.Result, err error) {
	r.applyLogger(&opts)
	start := time.Now()
	observability.Pipeline().OnExportStart(ctx, len(s.Objects))
	defer func() {
		groups, pools := 0, 0
		if res != nil {
			groups, pools = res.Groups, res.Pools
		}
		observability.Pipeline().OnExportComplete(ctx, groups, pools, time.Since(start), err)
	}()

	x, err := export.New(opts.Export, opts.Logger.WithPrefix("export"))
	if err != nil {
		return nil, err
	}
	return x.Export(ctx, s)
}

// Render renders doc and encodes the lines. Nothing is returned unless the
// whole document renders.
func (r *Runner) Render(ctx context.Context, doc *egg.Document, opts Options) (lines []string, data []byte, err error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Encoding)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, len(lines), len(data), time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	rendered, err := doc.Render()
	if err != nil {
		return nil, nil, err
	}
	encoded, err := eggio.Encode(rendered, opts.Encoding)
	if err != nil {
		return nil, nil, err
	}
	return rendered, encoded, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
