package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pandaegg/pkg/diff"
	"github.com/matzehuels/pandaegg/pkg/errors"
	"github.com/matzehuels/pandaegg/pkg/scene"
)

func vec2(x, y float64) *[2]float64    { return &[2]float64{x, y} }
func vec3(x, y, z float64) *[3]float64 { return &[3]float64{x, y, z} }

func testScene() *scene.Scene {
	cube := &scene.Mesh{
		Name: "cube",
		Vertices: []scene.Vertex{
			{Co: [3]float64{0, 1, 1}, UV: vec2(1, 1)},
			{Co: [3]float64{1, 0, 0}},
			{Co: [3]float64{0, 0, 0}, Normal: vec3(0, 0, 1)},
		},
		Polygons: []scene.Polygon{
			{Vertices: []int{0, 1, 2}, Normal: vec3(0, -1, 0)},
		},
	}
	return &scene.Scene{
		Name: "test",
		Objects: []scene.Object{
			{Name: "box", Type: scene.TypeMesh, Mesh: cube, Selected: true},
			{Name: "lamp", Type: "LAMP"},
			{Name: "box2", Type: scene.TypeMesh, Mesh: cube},
		},
	}
}

func render(t *testing.T, res *Result) []string {
	t.Helper()
	lines, err := res.Document.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return lines
}

func TestExport(t *testing.T) {
	x, err := New(Options{}, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	res, err := x.Export(context.Background(), testScene())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	want := []string{
		"<CoordinateSystem> { Z-up }",
		"<Group> box {",
		"    <Polygon> {",
		"        <Normal> { 0 -1 0 }",
		"        <VertexRef> {",
		"            0 1 2",
		"            <Ref> { cube }",
		"        }",
		"    }",
		"}",
		"<VertexPool> cube {",
		"    <Vertex> 0 {",
		"        0 1 1",
		"        <UV> { 1 1 }",
		"    }",
		"    <Vertex> 1 { 1 0 0 }",
		"    <Vertex> 2 {",
		"        0 0 0",
		"        <Normal> { 0 0 1 }",
		"    }",
		"}",
		"<Group> box2 {",
		"    <Polygon> {",
		"        <Normal> { 0 -1 0 }",
		"        <VertexRef> {",
		"            0 1 2",
		"            <Ref> { cube }",
		"        }",
		"    }",
		"}",
	}
	if d := diff.Unified("want", "got", want, render(t, res), 0); d != "" {
		t.Errorf("exported document differs:\n%s", d)
	}

	if res.Groups != 2 || res.Pools != 1 {
		t.Errorf("Groups = %d, Pools = %d, want 2 and 1", res.Groups, res.Pools)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "lamp" {
		t.Errorf("Skipped = %v, want [lamp]", res.Skipped)
	}
	if res.Document.Index(KindVertexPool, "cube") != 2 {
		t.Errorf("Index(VertexPool, cube) = %d, want 2", res.Document.Index(KindVertexPool, "cube"))
	}
}

func TestExportSelectedOnly(t *testing.T) {
	x, err := New(Options{SelectedOnly: true, CoordinateSystem: "Y-up"}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	res, err := x.Export(context.Background(), testScene())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	lines := render(t, res)
	if lines[0] != "<CoordinateSystem> { Y-up }" {
		t.Errorf("first line = %q, want Y-up coordinate system", lines[0])
	}
	if res.Document.Find(KindGroup, "box2") != nil {
		t.Error("unselected object should not be exported")
	}
	if res.Document.Find(KindGroup, "box") == nil {
		t.Error("selected object should be exported")
	}
}

func TestExportNamedObjects(t *testing.T) {
	var logs bytes.Buffer
	x, err := New(Options{Objects: []string{"box2", "ghost"}}, log.New(&logs))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	res, err := x.Export(context.Background(), testScene())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	if res.Groups != 1 || res.Document.Find(KindGroup, "box2") == nil {
		t.Errorf("expected only box2 to be exported, got %d groups", res.Groups)
	}
	if res.Document.Find(KindVertexPool, "cube") == nil {
		t.Error("pool for box2's mesh should be exported")
	}
	if !strings.Contains(logs.String(), "ghost") {
		t.Errorf("missing object should be logged, got %q", logs.String())
	}
}

func TestExportBlankLines(t *testing.T) {
	x, err := New(Options{BlankLines: true}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	res, err := x.Export(context.Background(), testScene())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	lines := render(t, res)
	if lines[1] != "" || lines[2] != "<Group> box {" {
		t.Errorf("expected blank line between blocks, got %q", lines[:3])
	}
}

func TestExportCancelled(t *testing.T) {
	x, err := New(Options{}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := x.Export(ctx, testScene()); err != context.Canceled {
		t.Errorf("Export() error = %v, want context.Canceled", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		cs      string
		want    string
		wantErr bool
	}{
		{"", DefaultCoordinateSystem, false},
		{"Y-up", "Y-up", false},
		{"z-up-right", "z-up-right", false},
		{"Z-Up", "Z-Up", false},
		{"X-up", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.cs, func(t *testing.T) {
			opts := Options{CoordinateSystem: tt.cs}
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("Validate() code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
				}
				return
			}
			if opts.CoordinateSystem != tt.want {
				t.Errorf("CoordinateSystem = %q, want %q", opts.CoordinateSystem, tt.want)
			}
		})
	}
}
