package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

const boxJSON = `{
  "name": "demo",
  "objects": [
    {
      "name": "box",
      "type": "MESH",
      "selected": true,
      "mesh": {
        "name": "box",
        "vertices": [
          {"co": [0, 0, 0]},
          {"co": [1, 0, 0], "uv": [1, 0]},
          {"co": [1, 1, 0], "normal": [0, 0, 1]}
        ],
        "polygons": [
          {"vertices": [0, 1, 2], "normal": [0, 0, 1]}
        ]
      }
    },
    {"name": "lamp", "type": "LAMP"}
  ]
}`

const boxTOML = `
name = "demo"

[[objects]]
name = "box"
type = "MESH"
selected = true

[objects.mesh]
name = "box"
vertices = [
    { co = [0.0, 0.0, 0.0] },
    { co = [1.0, 0.0, 0.0], uv = [1.0, 0.0] },
    { co = [1.0, 1.0, 0.0], normal = [0.0, 0.0, 1.0] },
]
polygons = [
    { vertices = [0, 1, 2], normal = [0.0, 0.0, 1.0] },
]

[[objects]]
name = "lamp"
type = "LAMP"
`

func checkBox(t *testing.T, s *Scene) {
	t.Helper()
	if s.Name != "demo" {
		t.Errorf("Name = %q, want demo", s.Name)
	}
	if len(s.Objects) != 2 {
		t.Fatalf("len(Objects) = %d, want 2", len(s.Objects))
	}
	box := s.Objects[0]
	if !box.IsMesh() || !box.Selected {
		t.Errorf("box = %+v, want selected mesh", box)
	}
	if got := len(box.Mesh.Vertices); got != 3 {
		t.Errorf("len(Vertices) = %d, want 3", got)
	}
	if box.Mesh.Vertices[1].UV == nil || box.Mesh.Vertices[1].UV[0] != 1 {
		t.Errorf("vertex 1 UV = %v, want [1 0]", box.Mesh.Vertices[1].UV)
	}
	if box.Mesh.Vertices[0].UV != nil {
		t.Errorf("vertex 0 UV = %v, want nil", box.Mesh.Vertices[0].UV)
	}
	if box.Mesh.Polygons[0].Normal == nil {
		t.Error("polygon normal should be decoded")
	}
	if s.Objects[1].IsMesh() {
		t.Error("lamp should not be a mesh")
	}
}

func TestReadJSON(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(boxJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	checkBox(t, s)
}

func TestReadTOML(t *testing.T) {
	s, err := ReadTOML(strings.NewReader(boxTOML))
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	checkBox(t, s)
}

func TestReadTOMLUnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("name = \"x\"\ncolour = \"red\"\n"))
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("ReadTOML() error = %v, want %s", err, errors.ErrCodeInvalidScene)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{"))
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("ReadJSON() error = %v, want %s", err, errors.ErrCodeInvalidScene)
	}
}

func TestRead(t *testing.T) {
	if _, err := Read(strings.NewReader(boxJSON), FormatJSON); err != nil {
		t.Errorf("Read(json) error: %v", err)
	}
	if _, err := Read(strings.NewReader(""), "yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Read(yaml) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestValidate(t *testing.T) {
	mesh := func(polys ...Polygon) *Mesh {
		return &Mesh{
			Name:     "m",
			Vertices: []Vertex{{}, {}, {}},
			Polygons: polys,
		}
	}

	tests := []struct {
		name    string
		scene   Scene
		wantErr bool
	}{
		{
			name:  "valid",
			scene: Scene{Objects: []Object{{Name: "a", Type: TypeMesh, Mesh: mesh(Polygon{Vertices: []int{0, 1, 2}})}}},
		},
		{
			name:  "non-mesh without data",
			scene: Scene{Objects: []Object{{Name: "cam", Type: "CAMERA"}}},
		},
		{
			name:  "shared mesh",
			scene: Scene{Objects: []Object{{Name: "a", Type: TypeMesh, Mesh: mesh()}, {Name: "b", Type: TypeMesh, Mesh: mesh()}}},
		},
		{
			name:    "empty object name",
			scene:   Scene{Objects: []Object{{Type: TypeEmpty}}},
			wantErr: true,
		},
		{
			name:    "duplicate object",
			scene:   Scene{Objects: []Object{{Name: "a"}, {Name: "a"}}},
			wantErr: true,
		},
		{
			name:    "mesh type without data",
			scene:   Scene{Objects: []Object{{Name: "a", Type: TypeMesh}}},
			wantErr: true,
		},
		{
			name:    "vertex out of range",
			scene:   Scene{Objects: []Object{{Name: "a", Type: TypeMesh, Mesh: mesh(Polygon{Vertices: []int{0, 1, 3}})}}},
			wantErr: true,
		},
		{
			name:    "degenerate polygon",
			scene:   Scene{Objects: []Object{{Name: "a", Type: TypeMesh, Mesh: mesh(Polygon{Vertices: []int{0, 1}})}}},
			wantErr: true,
		},
		{
			name:    "brace in mesh name",
			scene:   Scene{Objects: []Object{{Name: "a", Type: TypeMesh, Mesh: &Mesh{Name: "m}"}}}},
			wantErr: true,
		},
		{
			name: "conflicting shared mesh",
			scene: Scene{Objects: []Object{
				{Name: "a", Type: TypeMesh, Mesh: mesh()},
				{Name: "b", Type: TypeMesh, Mesh: &Mesh{Name: "m"}},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("Validate() code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidScene)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	zero := 0
	two := 2
	objects := []Object{
		{Name: "a", Selected: true},
		{Name: "b"},
		{Name: "orphan", Users: &zero, Selected: true},
		{Name: "used", Users: &two},
	}

	names := func(objs []Object) string {
		parts := make([]string, len(objs))
		for i, o := range objs {
			parts[i] = o.Name
		}
		return strings.Join(parts, ",")
	}

	if got := names(Filter(objects, false)); got != "a,b,used" {
		t.Errorf("Filter(all) = %s, want a,b,used", got)
	}
	if got := names(Filter(objects, true)); got != "a" {
		t.Errorf("Filter(selected) = %s, want a", got)
	}
}

func TestStats(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(boxJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	st := s.Stats()
	if st.Objects != 2 || st.Meshes != 1 || st.Vertices != 3 || st.Polygons != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "box.json")
	if err := os.WriteFile(jsonPath, []byte(boxJSON), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Import(jsonPath)
	if err != nil {
		t.Fatalf("Import(json) error: %v", err)
	}
	checkBox(t, s)

	unnamed := filepath.Join(dir, "unnamed.toml")
	if err := os.WriteFile(unnamed, []byte("objects = []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err = Import(unnamed)
	if err != nil {
		t.Fatalf("Import(toml) error: %v", err)
	}
	if s.Name != "unnamed" {
		t.Errorf("Name = %q, want name from file", s.Name)
	}

	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if _, err := Import(filepath.Join(dir, "box.obj")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Import(.obj) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}
