package io

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/transform"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

// Ext is the conventional extension for EGG files.
const Ext = ".egg"

// Renderer is anything that renders to lines, such as *egg.Document or
// *egg.Entry.
type Renderer interface {
	Render() ([]string, error)
}

// Options configures file export.
type Options struct {
	// Encoding is the IANA name of the output character set.
	// Defaults to DefaultEncoding.
	Encoding string

	// KeepExt leaves the path untouched instead of forcing the ".egg"
	// extension.
	KeepExt bool
}

// WriteLines writes each line followed by a newline to w, encoded with the
// named encoding. It does not close w.
func WriteLines(w io.Writer, lines []string, encodingName string) error {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return err
	}

	tw := transform.NewWriter(w, enc.NewEncoder())
	bw := bufio.NewWriter(tw)
	for i, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("write line %d: %w", i+1, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write line %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encode %s: %w", CanonicalName(encodingName), err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", CanonicalName(encodingName), err)
	}
	return nil
}

// Encode returns the newline-terminated, encoded bytes for lines.
func Encode(lines []string, encodingName string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteLines(&buf, lines, encodingName); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Lines is a Renderer for lines that were rendered earlier, such as a
// cached export.
type Lines []string

// Render returns the lines unchanged.
func (l Lines) Render() ([]string, error) {
	return l, nil
}

// ResolvePath returns the path [ExportFile] writes to for path and opts.
func ResolvePath(path string, opts Options) string {
	if opts.KeepExt {
		return path
	}
	return EnsureExt(path, Ext)
}

// ExportFile renders r and writes it to path, returning the path actually
// written. Unless opts.KeepExt is set the ".egg" extension is enforced with
// [EnsureExt]. Nothing is written when rendering fails.
func ExportFile(r Renderer, path string, opts Options) (string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	path = ResolvePath(path, opts)

	lines, err := r.Render()
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	data, err := Encode(lines, opts.Encoding)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// EnsureExt returns path with extension ext. An existing extension that
// matches ext case-insensitively is kept; any other extension is replaced.
// A path without a base name (such as ".hidden") gets ext appended.
func EnsureExt(path, ext string) string {
	dir, file := filepath.Split(path)
	cur := filepath.Ext(file)
	base := strings.TrimSuffix(file, cur)
	if base == "" || cur == "" {
		return path + ext
	}
	if strings.EqualFold(cur, ext) {
		return path
	}
	return dir + base + ext
}
