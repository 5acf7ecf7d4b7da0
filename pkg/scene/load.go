package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

// Supported input formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ReadJSON decodes and validates a scene from JSON.
func ReadJSON(r io.Reader) (*Scene, error) {
	var s Scene
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadTOML decodes and validates a scene from TOML. Unknown keys are
// rejected so typos do not silently drop data.
func ReadTOML(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Read decodes a scene in the given format.
func Read(r io.Reader, format string) (*Scene, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q (must be 'json' or 'toml')", format)
}

// FormatFromPath infers the scene format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer scene format from %q (use .json or .toml)", path)
}

// Import reads a scene file, choosing the decoder from its extension.
func Import(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = NameFromPath(path)
	}
	return s, nil
}

// NameFromPath returns the file name of path without its extension.
func NameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
