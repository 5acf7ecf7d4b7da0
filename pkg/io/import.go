package io

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/transform"

	"github.com/matzehuels/pandaegg/pkg/errors"
)

// ReadLines decodes r with the named encoding and splits it into lines
// without their terminators. A trailing "\r" is dropped so files written on
// Windows compare equal to freshly rendered output.
func ReadLines(r io.Reader, encodingName string) ([]string, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	var lines []string
	sc := bufio.NewScanner(transform.NewReader(r, enc.NewDecoder()))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, string(bytes.TrimSuffix(sc.Bytes(), []byte{'\r'})))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", CanonicalName(encodingName), err)
	}
	return lines, nil
}

// DecodeLines is [ReadLines] over a byte slice.
func DecodeLines(data []byte, encodingName string) ([]string, error) {
	return ReadLines(bytes.NewReader(data), encodingName)
}

// ImportFile reads the lines of an existing EGG file.
func ImportFile(path, encodingName string) ([]string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLines(f, encodingName)
}
