package io

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

// DefaultEncoding is used when no encoding name is given.
const DefaultEncoding = "UTF-8"

// LookupEncoding resolves an IANA character set name. An empty name selects
// DefaultEncoding. Unknown or unsupported names fail with INVALID_ENCODING.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "unknown encoding %q", name)
	}
	if enc == nil {
		return nil, errors.New(errors.ErrCodeInvalidEncoding, "unsupported encoding %q", name)
	}
	return enc, nil
}

// CanonicalName returns the IANA name for an encoding name, e.g. "utf8" →
// "UTF-8". Unknown names are returned unchanged.
func CanonicalName(name string) string {
	enc, err := LookupEncoding(name)
	if err != nil {
		return name
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return name
	}
	return canonical
}
