package egg

import (
	"strings"
	"testing"

	"github.com/matzehuels/pandaegg/pkg/diff"
	"github.com/matzehuels/pandaegg/pkg/errors"
)

// assertLines fails the test with a unified diff when got differs from want.
func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if d := diff.Unified("want", "got", want, got, 0); d != "" {
		t.Errorf("rendered lines differ:\n%s", d)
	}
}

func TestNewEmptyKind(t *testing.T) {
	if _, err := New(""); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("New(\"\") error = %v, want %s", err, errors.ErrCodeInvalidKind)
	}
	if _, err := NewNamed("", "box"); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("NewNamed(\"\", \"box\") error = %v, want %s", err, errors.ErrCodeInvalidKind)
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew(\"\") should panic")
		}
	}()
	MustNew("")
}

func TestRenderShapes(t *testing.T) {
	tests := []struct {
		name  string
		entry *Entry
		want  []string
	}{
		{
			name:  "empty named",
			entry: MustNamed("Foo", "bar"),
			want:  []string{"<Foo> bar {}"},
		},
		{
			name:  "empty unnamed",
			entry: MustNew("Foo"),
			want:  []string{"<Foo> {}"},
		},
		{
			name:  "single scalar inline",
			entry: MustNew("CoordinateSystem", String("Z-up")),
			want:  []string{"<CoordinateSystem> { Z-up }"},
		},
		{
			name:  "single tuple inline",
			entry: MustNamed("Vertex", "1", Ints(1, 1, 1)),
			want:  []string{"<Vertex> 1 { 1 1 1 }"},
		},
		{
			name:  "single nested entry never inlines",
			entry: MustNew("Polygon", MustNew("Ref", String("box"))),
			want: []string{
				"<Polygon> {",
				"    <Ref> { box }",
				"}",
			},
		},
		{
			name:  "multi child block",
			entry: MustNamed("Vertex", "1", Ints(0, 1, 1), MustNew("UV", Ints(1, 1))),
			want: []string{
				"<Vertex> 1 {",
				"    0 1 1",
				"    <UV> { 1 1 }",
				"}",
			},
		},
		{
			name:  "multi scalar block",
			entry: MustNew("Comment", String("first"), String("second")),
			want: []string{
				"<Comment> {",
				"    first",
				"    second",
				"}",
			},
		},
		{
			name:  "single multi-line nested entry",
			entry: MustNamed("VertexPool", "box", MustNamed("Vertex", "1", Ints(0, 1, 1), MustNew("UV", Ints(1, 1)))),
			want: []string{
				"<VertexPool> box {",
				"    <Vertex> 1 {",
				"        0 1 1",
				"        <UV> { 1 1 }",
				"    }",
				"}",
			},
		},
		{
			name:  "empty string in block has no trailing whitespace",
			entry: MustNew("Comment", String("a"), String("")),
			want: []string{
				"<Comment> {",
				"    a",
				"",
				"}",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.entry.Render()
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			assertLines(t, got, tt.want)
		})
	}
}

func TestRenderMatchesString(t *testing.T) {
	want := "<Vertex> 1 {\n    1 1 1\n    <UV> { 1 1 }\n}"
	e := MustNamed("Vertex", "1", Ints(1, 1, 1), MustNew("UV", Ints(1, 1)))
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAppendBuildsHierarchy(t *testing.T) {
	pool := MustNamed("VertexPool", "box")
	if err := pool.Append(MustNamed("Vertex", "1", Ints(0, 1, 1), MustNew("UV", Ints(1, 1)))); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	want := strings.Join([]string{
		"<VertexPool> box {",
		"    <Vertex> 1 {",
		"        0 1 1",
		"        <UV> { 1 1 }",
		"    }",
		"}",
	}, "\n")
	if got := pool.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCount(t *testing.T) {
	e := MustNew("Group")
	if e.Count() != 0 {
		t.Errorf("Count() = %d, want 0", e.Count())
	}
	if err := e.Append(String("a"), Ints(1, 2), MustNew("Ref")); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if e.Count() != 3 {
		t.Errorf("Count() = %d, want 3", e.Count())
	}
	if len(e.Children()) != 3 {
		t.Errorf("len(Children()) = %d, want 3", len(e.Children()))
	}
}

func TestOrderPreservation(t *testing.T) {
	a := MustNew("Group", String("x"), String("y"), String("z"))
	b := MustNew("Group", String("z"), String("y"), String("x"))

	la, _ := a.Render()
	lb, _ := b.Render()

	assertLines(t, la, []string{"<Group> {", "    x", "    y", "    z", "}"})
	assertLines(t, lb, []string{"<Group> {", "    z", "    y", "    x", "}"})
}

func TestRenderIdempotent(t *testing.T) {
	e := MustNamed("Group", "box", MustNew("Polygon", MustNew("Normal", Ints(0, -1, 0))))

	first, err := e.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	second, err := e.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	assertLines(t, second, first)
}

func TestDepthAdditivity(t *testing.T) {
	// Build a chain of depth 0..5, each carrying a leaf scalar, and check that
	// the leaf of depth d is prefixed by exactly (d+1) indentation units.
	const depth = 5
	entries := make([]*Entry, depth+1)
	for d := depth; d >= 0; d-- {
		e := MustNamed("Level", string(rune('a'+d)), String("leaf"))
		if d < depth {
			if err := e.Append(entries[d+1]); err != nil {
				t.Fatalf("Append() error: %v", err)
			}
		}
		entries[d] = e
	}

	lines, err := entries[0].Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for d := 0; d <= depth; d++ {
		header := strings.Repeat(Indent, d) + "<Level> " + string(rune('a'+d))
		found := false
		for _, l := range lines {
			if strings.HasPrefix(l, header) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no header line at depth %d with prefix %q", d, header)
		}
	}

	// The innermost entry has a single scalar and stays inline.
	innermost := strings.Repeat(Indent, depth) + "<Level> f { leaf }"
	if !contains(lines, innermost) {
		t.Errorf("missing inline innermost line %q", innermost)
	}
}

func TestFloatFormatting(t *testing.T) {
	tests := []struct {
		name  string
		child Child
		want  string
	}{
		{"integral float", Floats(1, 0, -2), "<V> { 1 0 -2 }"},
		{"fraction", Floats(0.1, 0.25), "<V> { 0.1 0.25 }"},
		{"full precision", Float(1.0 / 3.0), "<V> { 0.3333333333333333 }"},
		{"tiny no exponent", Float(1e-7), "<V> { 0.0000001 }"},
		{"float32 shortest", Float32(0.1), "<V> { 0.1 }"},
		{"negative int", Int(-42), "<V> { -42 }"},
		{"mixed vec", Vec(Int(3), Float(0.5), String("x")), "<V> { 3 0.5 x }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := MustNew("V", tt.child).Render()
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			assertLines(t, lines, []string{tt.want})
		})
	}
}

func TestAppendOwnership(t *testing.T) {
	t.Run("already attached", func(t *testing.T) {
		child := MustNew("Ref", String("box"))
		a := MustNew("A", child)
		b := MustNew("B")

		err := b.Append(child)
		if !errors.Is(err, errors.ErrCodeAlreadyAttached) {
			t.Fatalf("Append() error = %v, want %s", err, errors.ErrCodeAlreadyAttached)
		}
		if b.Count() != 0 {
			t.Errorf("failed Append should not add children, Count() = %d", b.Count())
		}
		if a.Count() != 1 {
			t.Errorf("original parent should keep its child, Count() = %d", a.Count())
		}
	})

	t.Run("same entry twice in one call", func(t *testing.T) {
		child := MustNew("Ref")
		err := MustNew("A").Append(child, child)
		if !errors.Is(err, errors.ErrCodeAlreadyAttached) {
			t.Errorf("Append() error = %v, want %s", err, errors.ErrCodeAlreadyAttached)
		}
	})

	t.Run("self", func(t *testing.T) {
		e := MustNew("A")
		if err := e.Append(e); !errors.Is(err, errors.ErrCodeCycle) {
			t.Errorf("Append(self) error = %v, want %s", err, errors.ErrCodeCycle)
		}
	})

	t.Run("ancestor into descendant", func(t *testing.T) {
		leaf := MustNew("Leaf")
		root := MustNew("Root", MustNew("Mid", leaf))
		if err := leaf.Append(root); !errors.Is(err, errors.ErrCodeCycle) {
			t.Errorf("Append(ancestor) error = %v, want %s", err, errors.ErrCodeCycle)
		}
		if leaf.Count() != 0 {
			t.Errorf("failed Append should not add children, Count() = %d", leaf.Count())
		}
	})
}

func TestRenderMalformedChild(t *testing.T) {
	var missing *Entry
	inner := MustNamed("Vertex", "3", Ints(0, 0, 0))
	if err := inner.Append(missing); err != nil {
		t.Fatalf("Append() should not validate shapes: %v", err)
	}
	root := MustNamed("VertexPool", "box", MustNamed("Vertex", "2"), inner)

	lines, err := root.Render()
	if err == nil {
		t.Fatal("Render() should fail on nil child")
	}
	if lines != nil {
		t.Errorf("Render() should return no lines on error, got %q", lines)
	}
	if !errors.Is(err, errors.ErrCodeInvalidChild) {
		t.Errorf("Render() error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidChild)
	}

	ce, ok := err.(*ChildError)
	if !ok {
		t.Fatalf("Render() error type = %T, want *ChildError", err)
	}
	path := ce.Path()
	if len(path) != 2 || path[0] != 1 || path[1] != 1 {
		t.Errorf("Path() = %v, want [1 1]", path)
	}
	if !strings.Contains(err.Error(), "<VertexPool> box: child 1: <Vertex> 3: child 1") {
		t.Errorf("Error() = %q, should name the path", err.Error())
	}

	// Siblings render on their own.
	if _, err := MustNamed("Vertex", "2").Render(); err != nil {
		t.Errorf("sibling Render() error: %v", err)
	}
}

func TestRenderEmbeddedScalarRejected(t *testing.T) {
	type custom struct{ Scalar }
	e := MustNew("V", custom{String("x")})

	_, err := e.Render()
	if !errors.Is(err, errors.ErrCodeInvalidChild) {
		t.Errorf("Render() error = %v, want %s", err, errors.ErrCodeInvalidChild)
	}
}

func TestRenderRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		entry *Entry
		path  []int
	}{
		{"inline line break", MustNew("Comment", String("a\nb")), []int{0}},
		{"block line break", MustNew("Comment", String("a\nb"), Int(1)), []int{0}},
		{"carriage return", MustNew("Comment", String("ok"), String("a\rb")), []int{1}},
		{"tuple line break", MustNew("UV", Vec(String("1"), String("2\n3"))), []int{0}},
		{"inline empty tuple", MustNew("UV", Tuple{}), []int{0}},
		{"block empty tuple", MustNew("Vertex", Ints(0, 0, 0), Ints()), []int{1}},
		{"nested line break", MustNamed("Group", "g", MustNew("Comment", Int(1), String("x\n"))), []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := tt.entry.Render()
			if !errors.Is(err, errors.ErrCodeInvalidChild) {
				t.Fatalf("Render() error = %v, want %s", err, errors.ErrCodeInvalidChild)
			}
			if lines != nil {
				t.Errorf("Render() lines = %q, want none", lines)
			}
			ce, ok := err.(*ChildError)
			if !ok {
				t.Fatalf("Render() error type = %T, want *ChildError", err)
			}
			if got := ce.Path(); !equalInts(got, tt.path) {
				t.Errorf("Path() = %v, want %v", got, tt.path)
			}
		})
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAppendValue(t *testing.T) {
	e := MustNamed("Vertex", "0")
	if err := e.AppendValue([3]float64{0.5, 1, -1}, MustNew("UV", Floats(0, 1))); err != nil {
		t.Fatalf("AppendValue() error: %v", err)
	}
	assertLines(t, mustRender(t, e), []string{
		"<Vertex> 0 {",
		"    0.5 1 -1",
		"    <UV> { 0 1 }",
		"}",
	})

	err := e.AppendValue(map[string]int{})
	if !errors.Is(err, errors.ErrCodeInvalidChild) {
		t.Errorf("AppendValue(map) error = %v, want %s", err, errors.ErrCodeInvalidChild)
	}
	if e.Count() != 2 {
		t.Errorf("failed AppendValue should not add children, Count() = %d", e.Count())
	}
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{"int", 7, "<V> { 7 }", false},
		{"uint8", uint8(255), "<V> { 255 }", false},
		{"float64", 2.5, "<V> { 2.5 }", false},
		{"float32", float32(0.1), "<V> { 0.1 }", false},
		{"string", "Z-up", "<V> { Z-up }", false},
		{"int slice", []int{3, 7, 8, 4}, "<V> { 3 7 8 4 }", false},
		{"float array", [2]float32{1, 0.5}, "<V> { 1 0.5 }", false},
		{"scalar", Int(1), "<V> { 1 }", false},

		{"nil", nil, "", true},
		{"nil entry", (*Entry)(nil), "", true},
		{"bool", true, "", true},
		{"nested slice", [][]int{{1}}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ValueOf(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValueOf(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			assertLines(t, mustRender(t, MustNew("V", c)), []string{tt.want})
		})
	}
}

func TestEqual(t *testing.T) {
	build := func() *Entry {
		return MustNamed("Vertex", "1", Ints(0, 1, 1), MustNew("UV", Ints(1, 1)))
	}

	if !Equal(build(), build()) {
		t.Error("structurally identical entries should be equal")
	}
	if Equal(build(), MustNamed("Vertex", "2", Ints(0, 1, 1), MustNew("UV", Ints(1, 1)))) {
		t.Error("entries with different names should not be equal")
	}
	if Equal(build(), MustNamed("Vertex", "1", MustNew("UV", Ints(1, 1)), Ints(0, 1, 1))) {
		t.Error("entries with reordered children should not be equal")
	}
	if !Equal(nil, nil) {
		t.Error("Equal(nil, nil) should be true")
	}
	if Equal(build(), nil) {
		t.Error("Equal(entry, nil) should be false")
	}
}

func TestWalk(t *testing.T) {
	root := MustNamed("Group", "box",
		MustNew("Polygon",
			MustNew("Normal", Ints(0, -1, 0)),
			MustNew("VertexRef", Ints(3, 7, 8, 4), MustNew("Ref", String("box"))),
		),
	)

	var visited []string
	err := root.Walk(func(e *Entry, depth int) error {
		visited = append(visited, strings.Repeat(".", depth)+e.Kind())
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	want := []string{"Group", ".Polygon", "..Normal", "..VertexRef", "...Ref"}
	assertLines(t, visited, want)
}

func mustRender(t *testing.T, e *Entry) []string {
	t.Helper()
	lines, err := e.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return lines
}

func contains(lines []string, s string) bool {
	for _, l := range lines {
		if l == s {
			return true
		}
	}
	return false
}
