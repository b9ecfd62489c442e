// SPDX-License-Identifier: MIT

package matrixio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultKey is the mapping key consulted when a document is an object
// rather than a bare array of rows.
const DefaultKey = "matrix"

var (
	// ErrEmpty is returned for a document with no rows or no columns.
	ErrEmpty = errors.New("matrixio: empty matrix")

	// ErrNotNumeric is returned when an entry is not a number.
	ErrNotNumeric = errors.New("matrixio: entry is not numeric")

	// ErrFormat is returned when the document is not an array of rows.
	ErrFormat = errors.New("matrixio: malformed matrix document")
)

// Options tunes decoding.
type Options struct {
	// Format selects the decoder; FormatAuto sniffs the content.
	Format Format

	// Path selects the rows inside the document. For JSON it is a gjson
	// path; for YAML a dotted key path. Empty means the document itself,
	// or its DefaultKey when the document is a mapping.
	Path string
}

// Read decodes a matrix from r.
func Read(r io.Reader, opts Options) (*matrix.Dense, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Decode(data, opts)
}

// Decode decodes a matrix from data according to opts.
func Decode(data []byte, opts Options) (*matrix.Dense, error) {
	format := opts.Format
	if format == FormatAuto {
		format = Sniff(data)
	}

	switch format {
	case FormatJSON:
		return DecodeJSON(data, opts.Path)
	case FormatYAML:
		return DecodeYAML(data, opts.Path)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrFormat, format)
	}
}

// FormatForFile picks a format from a file extension; unknown extensions
// yield FormatAuto.
func FormatForFile(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Sniff treats input that is valid JSON as JSON and anything else as YAML.
func Sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') && gjson.ValidBytes(trimmed) {
		return FormatJSON
	}

	return FormatYAML
}

// ParseLiteral parses an inline literal such as "[[1, 0], [0, 1]]".
func ParseLiteral(s string) (*matrix.Dense, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmpty
	}

	return DecodeYAML([]byte(s), "")
}

// DecodeJSON selects the rows with a gjson path and converts them.
func DecodeJSON(data []byte, path string) (*matrix.Dense, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrFormat)
	}

	doc := gjson.ParseBytes(data)
	switch {
	case path != "":
		doc = doc.Get(path)
		if !doc.Exists() {
			return nil, fmt.Errorf("%w: path %q not found", ErrFormat, path)
		}
	case doc.IsObject():
		doc = doc.Get(DefaultKey)
		if !doc.Exists() {
			return nil, fmt.Errorf("%w: object has no %q key", ErrFormat, DefaultKey)
		}
	}

	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: want an array of rows, got %s", ErrFormat, doc.Type)
	}

	var rows [][]float64
	for i, row := range doc.Array() {
		if !row.IsArray() {
			return nil, fmt.Errorf("%w: row %d is not an array", ErrFormat, i)
		}
		entries := row.Array()
		vals := make([]float64, len(entries))
		for j, e := range entries {
			if e.Type != gjson.Number {
				return nil, fmt.Errorf("%w: (%d,%d) = %s", ErrNotNumeric, i, j, e.Raw)
			}
			vals[j] = e.Float()
		}
		rows = append(rows, vals)
	}

	return build(rows)
}

// DecodeYAML accepts a bare sequence of rows or a mapping holding one under
// path (DefaultKey when path is empty).
func DecodeYAML(data []byte, path string) (*matrix.Dense, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if doc == nil {
		return nil, ErrEmpty
	}

	if path == "" {
		if _, ok := doc.(map[string]interface{}); ok {
			path = DefaultKey
		}
	}
	if path != "" {
		var err error
		if doc, err = lookup(doc, path); err != nil {
			return nil, err
		}
	}

	seq, ok := doc.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: want a sequence of rows, got %T", ErrFormat, doc)
	}

	rows := make([][]float64, 0, len(seq))
	for i, r := range seq {
		entries, ok := r.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: row %d is not a sequence", ErrFormat, i)
		}
		vals := make([]float64, len(entries))
		for j, e := range entries {
			v, ok := toFloat(e)
			if !ok {
				return nil, fmt.Errorf("%w: (%d,%d) = %v", ErrNotNumeric, i, j, e)
			}
			vals[j] = v
		}
		rows = append(rows, vals)
	}

	return build(rows)
}

func lookup(doc interface{}, path string) (interface{}, error) {
	current := doc
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: path %q not found", ErrFormat, path)
		}
		if current, ok = m[part]; !ok {
			return nil, fmt.Errorf("%w: path %q not found", ErrFormat, path)
		}
	}

	return current, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func build(rows [][]float64) (*matrix.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}

	return matrix.NewDenseFrom(rows)
}
