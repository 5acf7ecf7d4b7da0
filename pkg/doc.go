// Package pkg provides the core libraries for pandaegg, an exporter that
// writes scenes as Panda3D EGG text.
//
// # Overview
//
// The pkg directory is organized into three main areas:
//
//  1. [egg] - The document model: typed, named entries and their renderer
//  2. [scene], [export], [io] - Domain logic (scene input, scene → tree,
//     line output)
//  3. [pipeline], [cache], [observability] - Orchestration with caching and
//     instrumentation
//
// # Architecture
//
// The typical data flow through pandaegg:
//
//	Scene file (JSON/TOML)
//	         ↓
//	    [scene] package (decode + validate)
//	         ↓
//	    [export] package (build the Entry tree)
//	         ↓
//	    [egg] package (render lines)
//	         ↓
//	    [io] package (encode + write .egg)
//
// # Quick Start
//
// Build and render a tree by hand:
//
//	doc := egg.NewDocument()
//	_ = doc.Append(
//	    egg.MustNew("CoordinateSystem", egg.String("Z-up")),
//	    egg.MustNamed("VertexPool", "box",
//	        egg.MustNamed("Vertex", "0", egg.Floats(0, 0, 0)),
//	    ),
//	)
//	path, err := io.ExportFile(doc, "box", io.Options{})
//
// Or run the full pipeline on a scene file:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "box.json"})
//
// # Supporting Packages
//
// [errors] - Structured errors with stable codes used across all packages.
//
// [diff] - Unified diffs between rendered documents.
//
// [render/outline] - Structural outlines of a document as text or Graphviz.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/egg/...                # Specific package
//	go test -run Example ./pkg/egg       # Examples only
//
// [egg]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/egg
// [scene]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/scene
// [export]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/export
// [io]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/errors
// [diff]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/diff
// [render/outline]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/render/outline
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pandaegg/pkg/buildinfo
package pkg
