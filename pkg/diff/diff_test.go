package diff

import (
	"strings"
	"testing"
)

func TestUnifiedEqual(t *testing.T) {
	a := []string{"<Group> box {", "}"}
	if got := Unified("a", "b", a, a, 0); got != "" {
		t.Errorf("Unified() on equal input = %q, want empty", got)
	}
}

func TestUnifiedChange(t *testing.T) {
	a := []string{"<Vertex> 1 {", "    0 1 1", "}"}
	b := []string{"<Vertex> 1 {", "    0 1 2", "}"}

	got := Unified("want", "got", a, b, 1)

	for _, want := range []string{"--- want", "+++ got", "-    0 1 1", "+    0 1 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("Unified() missing %q in:\n%s", want, got)
		}
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.text)
			if !equal(got, tt.want) {
				t.Errorf("Lines(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
