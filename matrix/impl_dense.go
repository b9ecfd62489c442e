// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); NewDenseFrom: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt   = "At"           // method tag used in error wrappers
	ctxSet  = "Set"          // method tag used in error wrappers
	ctxFrom = "NewDenseFrom" // ctor tag for NewDenseFrom
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Notes:
//   - Keep tags in constants for grep-ability and consistency.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy from defaults.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills deterministically.
	buf := make([]float64, rows*cols)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           buf,
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFrom copies a rectangular [][]float64 into a fresh *Dense.
// Implementation:
//   - Stage 1: resolve options; validate len(rows)>0 and len(rows[0])>0.
//   - Stage 2: validate every row has the same length (ErrRagged).
//   - Stage 3: copy values row by row, enforcing the NaN/Inf policy.
//
// Inputs:
//   - rows: row slices; the input is never retained.
//   - opts: WithNoValidateNaNInf() to accept non-finite values.
//
// Errors:
//   - ErrInvalidDimensions (empty input), ErrRagged, ErrNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows [][]float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFrom, ErrInvalidDimensions)
	}

	r, c := len(rows), len(rows[0])
	m := &Dense{r: r, c: c, data: make([]float64, r*c), validateNaNInf: o.validateNaNInf}

	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", ctxFrom, i, len(rows[i]), c, ErrRagged)
		}
		for j = 0; j < c; j++ {
			if err := m.Set(i, j, rows[i][j]); err != nil {
				return nil, fmt.Errorf("%s: %w", ctxFrom, err)
			}
		}
	}

	return m, nil
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: enforce numeric policy (reject NaN/±Inf when enabled).
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// Rows2D copies the matrix out as row slices. The result shares no
// storage with m.
// Complexity: O(r*c).
func (m *Dense) Rows2D() [][]float64 {
	out := make([][]float64, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		row := make([]float64, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// String renders rows as lines with comma-separated values.
// Intended for logs and debugging; not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// ToRows copies any Matrix out as row slices, using the *Dense fast-path
// when available.
// Errors:
//   - ErrNilMatrix; propagated At errors for foreign implementations.
func ToRows(m Matrix) ([][]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d.Rows2D(), nil
	}

	r, c := m.Rows(), m.Cols()
	out := make([][]float64, r)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}
