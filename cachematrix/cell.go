package cachematrix

import "github.com/AlexOcculate/ProgrammingAssignment2/matrix"

// Cell holds a matrix value and an optional cached inverse of it.
//
// The zero value is a cell with a nil value and no cached inverse.
type Cell struct {
	value   matrix.Matrix
	inverse matrix.Matrix
	cached  bool
}

// New returns a cell holding initial with no cached inverse. The matrix is
// not validated here; shape and invertibility are checked at inversion time.
func New(initial matrix.Matrix) *Cell {
	return &Cell{value: initial}
}

// Set replaces the held matrix and clears the cached inverse, even when v
// is the same matrix or equal in content.
func (c *Cell) Set(v matrix.Matrix) {
	c.value = v
	c.inverse = nil
	c.cached = false
}

// Get returns the held matrix. The result is not a copy.
func (c *Cell) Get() matrix.Matrix {
	return c.value
}

// SetInverse stores m as the cached inverse without checking it.
func (c *Cell) SetInverse(m matrix.Matrix) {
	c.inverse = m
	c.cached = true
}

// Inverse returns the cached inverse and whether one is present.
func (c *Cell) Inverse() (matrix.Matrix, bool) {
	return c.inverse, c.cached
}

// Cached reports whether an inverse is cached.
func (c *Cell) Cached() bool {
	return c.cached
}
