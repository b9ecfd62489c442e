// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels (wrapped with an operation tag) and
// tests check them via errors.Is. No kernel panics on user-triggered error
// conditions; panics are reserved for invalid Option values.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so log lines can be grepped.
// Kernels wrap with fmt.Errorf("<Op>: %w", ErrX); callers still match with
// errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/index/NaN -> dimension mismatch -> invertibility.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., a.Cols != b.Rows in Mul or different shapes in AllClose.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrRagged is returned when row slices passed to NewDenseFrom have
	// different lengths.
	ErrRagged = errors.New("matrix: ragged rows")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNotInvertible is the umbrella sentinel for every inversion failure.
	// Inverse joins it with ErrNonSquare or ErrSingular, so errors.Is matches
	// both the umbrella and the specific cause.
	ErrNotInvertible = errors.New("matrix: not invertible")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrSingular is returned when a pivot falls within tolerance of zero
	// during LU factorization.
	ErrSingular = errors.New("matrix: singular matrix")
)
