// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/AlexOcculate/ProgrammingAssignment2/cachematrix"
	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// DefaultDigits is the number of decimals kept when Options.Digits is unset.
const DefaultDigits = 6

// DefaultPadding is the column padding used by the command line.
const DefaultPadding = 1

// ErrUnknownFormat is returned for a format not in Formats.
var ErrUnknownFormat = errors.New("output: unknown format")

// Colors holds the table palette.
type Colors struct {
	Title string
	Even  string
	Odd   string
}

// DefaultColors is the palette used when none is configured.
var DefaultColors = Colors{Title: "#f6be00", Even: "#ffffff", Odd: "#00c8f0"}

// Options controls rendering.
type Options struct {
	Format Format
	Digits int
	Color  bool
	Colors Colors

	// Padding is the left padding of every column after the first.
	Padding int

	// Title is printed above a table; ignored by json and yaml.
	Title string
}

// ParseFormat validates s against Formats.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownFormat, s, Formats)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// FormatNumber rounds v to digits decimals and drops trailing zeros.
func FormatNumber(v float64, digits int) string {
	if digits < 0 {
		digits = DefaultDigits
	}
	// Round first; Ftoa then prints the shortest form of the rounded value.
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if err != nil {
		return humanize.Ftoa(v)
	}
	s := humanize.Ftoa(rounded)
	if s == "-0" {
		return "0"
	}

	return s
}

type document struct {
	Rows   int             `json:"rows" yaml:"rows"`
	Cols   int             `json:"cols" yaml:"cols"`
	Matrix [][]json.Number `json:"matrix" yaml:"-"`
	Values [][]float64     `json:"-" yaml:"matrix,flow"`
}

// Matrix writes m to w in the requested format. The json and yaml
// documents carry the rows under a "matrix" key, so they read back in
// as input.
func Matrix(w io.Writer, m matrix.Matrix, opts Options) error {
	rows, err := matrix.ToRows(m)
	if err != nil {
		return err
	}

	digits := opts.Digits
	if digits <= 0 {
		digits = DefaultDigits
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = FormatNumber(v, digits)
		}
	}

	switch opts.Format {
	case FormatTable, "":
		if opts.Title != "" {
			fmt.Fprintln(w, opts.Title)
		}
		fmt.Fprintln(w, newTable(cells, nil, opts))
		return nil
	case FormatJSON:
		doc := document{Rows: m.Rows(), Cols: m.Cols(), Matrix: make([][]json.Number, len(cells))}
		for i, row := range cells {
			doc.Matrix[i] = make([]json.Number, len(row))
			for j, s := range row {
				doc.Matrix[i][j] = json.Number(s)
			}
		}
		return writeJSON(w, doc)
	case FormatYAML:
		doc := document{Rows: m.Rows(), Cols: m.Cols(), Values: make([][]float64, len(cells))}
		for i, row := range cells {
			doc.Values[i] = make([]float64, len(row))
			for j, s := range row {
				// s came from FormatNumber so it always parses.
				doc.Values[i][j], _ = strconv.ParseFloat(s, 64)
			}
		}
		return writeYAML(w, doc)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, opts.Format)
	}
}

type statsDocument struct {
	Hits     int `json:"hits" yaml:"hits"`
	Misses   int `json:"misses" yaml:"misses"`
	Failures int `json:"failures" yaml:"failures"`
}

// Stats writes resolver counters to w.
func Stats(w io.Writer, s cachematrix.Stats, opts Options) error {
	switch opts.Format {
	case FormatTable, "":
		rows := [][]string{
			{"hits", humanize.Comma(int64(s.Hits))},
			{"misses", humanize.Comma(int64(s.Misses))},
			{"failures", humanize.Comma(int64(s.Failures))},
		}
		fmt.Fprintln(w, newTable(rows, []string{"counter", "value"}, opts))
		return nil
	case FormatJSON:
		return writeJSON(w, statsDocument(s))
	case FormatYAML:
		return writeYAML(w, statsDocument(s))
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, opts.Format)
	}
}

func newTable(rows [][]string, headers []string, opts Options) *table.Table {
	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Align(lipgloss.Right)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		colors := opts.Colors
		if colors == (Colors{}) {
			colors = DefaultColors
		}
		headerStyle = headerStyle.Foreground(lipgloss.Color(colors.Title))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(colors.Even))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(colors.Odd))
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 && opts.Padding > 0 {
				style = style.PaddingLeft(opts.Padding)
			}

			return style
		}).
		Rows(rows...)

	if len(headers) > 0 {
		t = t.Headers(headers...).BorderHeader(false)
	}

	return t
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
