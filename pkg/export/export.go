// Package export turns a [scene.Scene] into an EGG [egg.Document].
//
// The document starts with the global entries (currently the coordinate
// system) followed, for every exported mesh object, by a <Group> named after
// the object holding its polygons and a <VertexPool> named after the mesh
// holding its vertices:
//
//	<CoordinateSystem> { Z-up }
//	<Group> box {
//	    <Polygon> {
//	        <VertexRef> {
//	            0 1 2
//	            <Ref> { box }
//	        }
//	    }
//	}
//	<VertexPool> box {
//	    <Vertex> 0 { 0 0 0 }
//	    ...
//	}
//
// Objects sharing a mesh get their own group but reference a single pool.
package export

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pandaegg/pkg/egg"
	"github.com/matzehuels/pandaegg/pkg/errors"
	"github.com/matzehuels/pandaegg/pkg/scene"
)

// Entry kinds emitted by the exporter.
const (
	KindCoordinateSystem = "CoordinateSystem"
	KindGroup            = "Group"
	KindPolygon          = "Polygon"
	KindNormal           = "Normal"
	KindVertexRef        = "VertexRef"
	KindRef              = "Ref"
	KindVertexPool       = "VertexPool"
	KindVertex           = "Vertex"
	KindUV               = "UV"
)

// DefaultCoordinateSystem matches the authoring tools pandaegg targets.
const DefaultCoordinateSystem = "Z-up"

// coordinateSystems lists the values Panda3D accepts, lower-cased; the
// loader compares them case-insensitively.
var coordinateSystems = map[string]bool{
	"z-up":       true,
	"y-up":       true,
	"z-up-right": true,
	"y-up-right": true,
	"z-up-left":  true,
	"y-up-left":  true,
}

// Options configures an export.
type Options struct {
	// CoordinateSystem is written as the <CoordinateSystem> entry.
	// Defaults to DefaultCoordinateSystem.
	CoordinateSystem string

	// SelectedOnly exports only objects marked as selected.
	SelectedOnly bool

	// Objects, when non-empty, restricts the export to the named objects.
	Objects []string

	// BlankLines separates top-level blocks with an empty line.
	BlankLines bool
}

// Validate checks the options and fills defaults.
func (o *Options) Validate() error {
	if o.CoordinateSystem == "" {
		o.CoordinateSystem = DefaultCoordinateSystem
	}
	if !coordinateSystems[strings.ToLower(o.CoordinateSystem)] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid coordinate system: %s", o.CoordinateSystem)
	}
	return nil
}

// Result summarises an export.
type Result struct {
	Document *egg.Document
	Groups   int
	Pools    int
	Skipped  []string // objects left out because they carry no mesh data
}

// Exporter builds EGG documents from scenes.
type Exporter struct {
	opts   Options
	logger *log.Logger
}

// New creates an exporter. A nil logger uses log.Default().
func New(opts Options, logger *log.Logger) (*Exporter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{opts: opts, logger: logger}, nil
}

// Export builds the document for s. It checks ctx between objects.
func (x *Exporter) Export(ctx context.Context, s *scene.Scene) (*Result, error) {
	var docOpts []egg.Option
	if x.opts.BlankLines {
		docOpts = append(docOpts, egg.WithBlankLines())
	}
	res := &Result{Document: egg.NewDocument(docOpts...)}

	if err := x.exportGlobals(res.Document); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(x.opts.Objects))
	for _, name := range x.opts.Objects {
		wanted[name] = true
	}

	pools := make(map[string]bool)
	for _, o := range scene.Filter(s.Objects, x.opts.SelectedOnly) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(wanted) > 0 && !wanted[o.Name] {
			continue
		}
		if !o.IsMesh() {
			x.logger.Debug("skipping object", "object", o.Name, "type", o.Type)
			res.Skipped = append(res.Skipped, o.Name)
			continue
		}

		if err := res.Document.Append(groupEntry(&o)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "object %s", o.Name)
		}
		res.Groups++

		if pools[o.Mesh.Name] {
			x.logger.Debug("reusing vertex pool", "object", o.Name, "mesh", o.Mesh.Name)
			continue
		}
		pools[o.Mesh.Name] = true
		if err := res.Document.Append(vertexPoolEntry(o.Mesh)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "mesh %s", o.Mesh.Name)
		}
		res.Pools++

		x.logger.Debug("exported mesh",
			"object", o.Name,
			"mesh", o.Mesh.Name,
			"vertices", len(o.Mesh.Vertices),
			"polygons", len(o.Mesh.Polygons))
	}

	for name := range wanted {
		if s.Find(name) == nil {
			x.logger.Warn("requested object not in scene", "object", name)
		}
	}
	return res, nil
}

func (x *Exporter) exportGlobals(doc *egg.Document) error {
	return doc.Append(egg.MustNew(KindCoordinateSystem, egg.String(x.opts.CoordinateSystem)))
}

// groupEntry builds <Group> object { <Polygon> { ... } ... }.
func groupEntry(o *scene.Object) *egg.Entry {
	polygons := make([]egg.Child, len(o.Mesh.Polygons))
	for i, p := range o.Mesh.Polygons {
		var body []egg.Child
		if p.Normal != nil {
			body = append(body, egg.MustNew(KindNormal, egg.Floats(p.Normal[:]...)))
		}
		body = append(body, egg.MustNew(KindVertexRef,
			egg.Ints(p.Vertices...),
			egg.MustNew(KindRef, egg.String(o.Mesh.Name)),
		))
		polygons[i] = egg.MustNew(KindPolygon, body...)
	}
	return egg.MustNamed(KindGroup, o.Name, polygons...)
}

// vertexPoolEntry builds <VertexPool> mesh { <Vertex> i { x y z ... } ... }.
func vertexPoolEntry(m *scene.Mesh) *egg.Entry {
	vertices := make([]egg.Child, len(m.Vertices))
	for i, v := range m.Vertices {
		body := []egg.Child{egg.Floats(v.Co[:]...)}
		if v.Normal != nil {
			body = append(body, egg.MustNew(KindNormal, egg.Floats(v.Normal[:]...)))
		}
		if v.UV != nil {
			body = append(body, egg.MustNew(KindUV, egg.Floats(v.UV[:]...)))
		}
		vertices[i] = egg.MustNamed(KindVertex, strconv.Itoa(i), body...)
	}
	return egg.MustNamed(KindVertexPool, m.Name, vertices...)
}
