// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads analysis input from files and streams, converting
// it to UTF-8 text.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "utf-8"

var (
	// ErrNotFound reports that the input file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrRead reports any other failure to read or decode input.
	ErrRead = errors.New("reading input")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile returns the contents of path decoded from the named encoding.
// A missing file yields an error matching ErrNotFound; every other failure
// matches ErrRead.
func ReadFile(path, encoding string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	defer f.Close()

	text, err := Decode(f, encoding)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// Decode reads r to the end and converts it from the named encoding.
// UTF-8 input must be valid; a leading byte order mark is dropped. Other
// encodings are looked up by their WHATWG label, e.g. "windows-1251".
func Decode(r io.Reader, encoding string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrRead, err)
		}
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: input is not valid UTF-8", ErrRead)
		}
		return string(data), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w: unknown encoding %q", ErrRead, encoding)
	}
	data, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("%w: decoding %s: %w", ErrRead, name, err)
	}
	return string(data), nil
}
