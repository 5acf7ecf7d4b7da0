// Package pipeline provides the export pipeline for pandaegg.
//
// This package implements the complete load → export → render pipeline used
// by every CLI command. Centralizing it keeps caching, hooks and logging
// identical whether the output goes to a file, stdout or a diff.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode the scene file (JSON or TOML) and validate it
//  2. Export: Build the EGG Entry tree from the scene
//  3. Render: Render the tree to lines and encode them
//
// The encoded bytes are cached under a key derived from the scene bytes and
// every option that affects the output, so re-exporting an unchanged scene
// skips all three stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input: "box.json",
//	    Export: export.Options{CoordinateSystem: "Z-up"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Data)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pandaegg/pkg/cache"
	"github.com/matzehuels/pandaegg/pkg/egg"
	"github.com/matzehuels/pandaegg/pkg/errors"
	"github.com/matzehuels/pandaegg/pkg/export"
	eggio "github.com/matzehuels/pandaegg/pkg/io"
	"github.com/matzehuels/pandaegg/pkg/scene"
)

// DefaultTTL is how long cached artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one export.
type Options struct {
	// Input is the scene file path. Its extension selects the decoder unless
	// Format is set.
	Input string

	// Format overrides the scene format ("json" or "toml").
	Format string

	// Export configures the scene → tree stage.
	Export export.Options

	// Encoding is the IANA name of the output character set.
	Encoding string

	// TTL is the cache lifetime of the artifact. Zero uses DefaultTTL.
	TTL time.Duration

	// Refresh bypasses the cache read; the fresh result is still stored.
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	if o.Format == "" {
		format, err := scene.FormatFromPath(o.Input)
		if err != nil {
			return err
		}
		o.Format = format
	}
	if err := o.Export.Validate(); err != nil {
		return err
	}
	if _, err := eggio.LookupEncoding(o.Encoding); err != nil {
		return err
	}
	o.Encoding = eggio.CanonicalName(o.Encoding)
	if o.Encoding == "" {
		o.Encoding = eggio.DefaultEncoding
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the rendered artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:           o.Format,
		CoordinateSystem: o.Export.CoordinateSystem,
		SelectedOnly:     o.Export.SelectedOnly,
		Objects:          o.Export.Objects,
		BlankLines:       o.Export.BlankLines,
		Encoding:         o.Encoding,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the exported tree. It is nil on a cache hit.
	Document *egg.Document

	// Lines are the rendered lines, decoded again on a cache hit.
	Lines []string

	// Data is the encoded file content.
	Data []byte

	// SceneHash is the content hash of the input file.
	SceneHash string

	// Skipped lists objects left out because they carry no mesh data. It is
	// restored from the cache on a hit.
	Skipped []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Data came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics. Counts are restored from the
// cache on a hit; stage timings are zero.
type Stats struct {
	Objects    int
	Groups     int
	Pools      int
	Lines      int
	Bytes      int
	LoadTime   time.Duration
	ExportTime time.Duration
	RenderTime time.Duration
}
