package io

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "<A> {}\n", []string{"<A> {}"}},
		{"no trailing newline", "<A> {}\n<B> {}", []string{"<A> {}", "<B> {}"}},
		{"blank line kept", "<A> {}\n\n<B> {}\n", []string{"<A> {}", "", "<B> {}"}},
		{"crlf", "<A> {\r\n    1\r\n}\r\n", []string{"<A> {", "    1", "}"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.input), "")
			if err != nil {
				t.Fatalf("ReadLines() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeLinesRoundTripLatin1(t *testing.T) {
	lines := []string{"<Group> würfel {", "    <Ref> { würfel }", "}"}
	data, err := Encode(lines, "latin1")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := DecodeLines(data, "latin1")
	if err != nil {
		t.Fatalf("DecodeLines() error: %v", err)
	}
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("DecodeLines() = %q, want %q", got, lines)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.egg")
	if err := os.WriteFile(path, []byte("<CoordinateSystem> { Z-up }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ImportFile(path, DefaultEncoding)
	if err != nil {
		t.Fatalf("ImportFile() error: %v", err)
	}
	if len(got) != 1 || got[0] != "<CoordinateSystem> { Z-up }" {
		t.Errorf("ImportFile() = %q", got)
	}

	_, err = ImportFile(filepath.Join(dir, "missing.egg"), "")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}
