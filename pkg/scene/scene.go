package scene

import (
	"fmt"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

// Object types understood by the exporter. Other types are carried through
// decoding but skipped on export.
const (
	TypeMesh  = "MESH"
	TypeEmpty = "EMPTY"
)

// Scene is an ordered collection of objects.
type Scene struct {
	Name    string   `json:"name,omitempty" toml:"name"`
	Objects []Object `json:"objects" toml:"objects"`
}

// Object is a placed item in the scene.
type Object struct {
	Name string `json:"name" toml:"name"`
	Type string `json:"type" toml:"type"`

	// Selected marks objects picked in the authoring tool.
	Selected bool `json:"selected,omitempty" toml:"selected"`

	// Users is the number of references to the object. Nil means unknown;
	// an explicit zero marks an orphan that is never exported.
	Users *int `json:"users,omitempty" toml:"users"`

	Mesh *Mesh `json:"mesh,omitempty" toml:"mesh"`
}

// Mesh holds vertex and polygon data. Several objects may share one mesh by
// using the same mesh name.
type Mesh struct {
	Name     string    `json:"name" toml:"name"`
	Vertices []Vertex  `json:"vertices" toml:"vertices"`
	Polygons []Polygon `json:"polygons" toml:"polygons"`
}

// Vertex is a position with optional per-vertex attributes.
type Vertex struct {
	Co     [3]float64  `json:"co" toml:"co"`
	UV     *[2]float64 `json:"uv,omitempty" toml:"uv"`
	Normal *[3]float64 `json:"normal,omitempty" toml:"normal"`
}

// Polygon references mesh vertices by index, in winding order.
type Polygon struct {
	Vertices []int      `json:"vertices" toml:"vertices"`
	Normal   *[3]float64 `json:"normal,omitempty" toml:"normal"`
}

// IsMesh reports whether the object carries exportable mesh data.
func (o *Object) IsMesh() bool {
	return o.Type == TypeMesh && o.Mesh != nil
}

// Unused reports whether the object is known to have no users.
func (o *Object) Unused() bool {
	return o.Users != nil && *o.Users == 0
}

// Validate checks names and vertex references. Errors carry INVALID_SCENE.
func (s *Scene) Validate() error {
	seen := make(map[string]bool, len(s.Objects))
	meshes := make(map[string]*Mesh)
	for i := range s.Objects {
		o := &s.Objects[i]
		if err := errors.ValidateName("object", o.Name); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		if seen[o.Name] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate object name %q", o.Name)
		}
		seen[o.Name] = true

		if o.Type == TypeMesh && o.Mesh == nil {
			return errors.New(errors.ErrCodeInvalidScene, "object %q: mesh object without mesh data", o.Name)
		}
		if o.Mesh == nil {
			continue
		}
		if err := o.Mesh.Validate(); err != nil {
			return fmt.Errorf("object %q: %w", o.Name, err)
		}
		if prev, ok := meshes[o.Mesh.Name]; ok && !sameShape(prev, o.Mesh) {
			return errors.New(errors.ErrCodeInvalidScene, "object %q: mesh %q is defined twice with different data", o.Name, o.Mesh.Name)
		}
		meshes[o.Mesh.Name] = o.Mesh
	}
	return nil
}

// Validate checks the mesh name and that every polygon references existing
// vertices and has at least three corners.
func (m *Mesh) Validate() error {
	if err := errors.ValidateName("mesh", m.Name); err != nil {
		return err
	}
	for i, p := range m.Polygons {
		if len(p.Vertices) < 3 {
			return errors.New(errors.ErrCodeInvalidScene, "mesh %q: polygon %d has %d vertices, need at least 3", m.Name, i, len(p.Vertices))
		}
		for _, v := range p.Vertices {
			if v < 0 || v >= len(m.Vertices) {
				return errors.New(errors.ErrCodeInvalidScene, "mesh %q: polygon %d references vertex %d of %d", m.Name, i, v, len(m.Vertices))
			}
		}
	}
	return nil
}

// sameShape is a cheap consistency check for meshes shared by name.
func sameShape(a, b *Mesh) bool {
	return len(a.Vertices) == len(b.Vertices) && len(a.Polygons) == len(b.Polygons)
}

// Filter returns the objects worth exporting, in order: objects known to be
// unused are dropped, and so are unselected objects when selectedOnly is set.
func Filter(objects []Object, selectedOnly bool) []Object {
	out := make([]Object, 0, len(objects))
	for _, o := range objects {
		if o.Unused() {
			continue
		}
		if selectedOnly && !o.Selected {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Stats summarises scene size.
type Stats struct {
	Objects  int
	Meshes   int
	Vertices int
	Polygons int
}

// Stats counts objects, distinct meshes, and their vertices and polygons.
func (s *Scene) Stats() Stats {
	st := Stats{Objects: len(s.Objects)}
	seen := make(map[string]bool)
	for _, o := range s.Objects {
		if o.Mesh == nil || seen[o.Mesh.Name] {
			continue
		}
		seen[o.Mesh.Name] = true
		st.Meshes++
		st.Vertices += len(o.Mesh.Vertices)
		st.Polygons += len(o.Mesh.Polygons)
	}
	return st
}

// Find returns the object with the given name, or nil.
func (s *Scene) Find(name string) *Object {
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return &s.Objects[i]
		}
	}
	return nil
}
