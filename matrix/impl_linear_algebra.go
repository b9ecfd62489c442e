// SPDX-License-Identifier: MIT
// Package matrix provides linear-algebra kernels over any Matrix
// implementation: multiplication, LU factorization with partial pivoting,
// and inversion. All kernels validate fail-fast and return sentinel errors
// wrapped with an operation tag.
//
// Notes:
//   - Kernels never mutate their inputs; results are freshly allocated *Dense.
//   - *Dense operands hit flat-slice fast-paths; other implementations go
//     through At/Set.

package matrix

import (
	"errors"
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul     = "Mul"
	opInverse = "Inverse"
	opLU      = "LU"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// notInvertible joins the umbrella sentinel with the specific cause so that
// errors.Is matches ErrNotInvertible and ErrSingular/ErrNonSquare alike.
func notInvertible(err error) error {
	return fmt.Errorf("%w: %w", ErrNotInvertible, err)
}

// denseOf returns the flat row-major data of m, copying through At for
// non-Dense implementations.
func denseOf(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}

	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Mul performs standard matrix multiplication C = A × B.
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate C(a.Rows × b.Cols).
//   - Stage 2: i→k→j loop over flat buffers (row-major friendly).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, propagated At errors.
//
// Complexity:
//   - Time O(r*k*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ad, err := denseOf(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, err := denseOf(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	r, inner, c := ad.r, ad.c, bd.c
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, k, j int
		aik     float64
	)
	for i = 0; i < r; i++ {
		for k = 0; k < inner; k++ {
			aik = ad.data[i*inner+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < c; j++ {
				out.data[i*c+j] += aik * bd.data[k*c+j]
			}
		}
	}

	return out, nil
}

// LUFactors holds a pivoted factorization P·A = L·U.
//   - L is unit lower triangular.
//   - U is upper triangular.
//   - Perm[i] is the row of A that ended up in row i of P·A.
type LUFactors struct {
	L, U *Dense
	Perm []int
}

// LU computes the Doolittle factorization P·A = L·U with partial pivoting.
// Implementation:
//   - Stage 1: ValidateNotNil, ValidateSquare, ValidateFinite; copy A into a work buffer.
//   - Stage 2: for k=0..n-1 pick the row with the largest |a[i,k]| (first wins on ties),
//     swap it into place, then eliminate below the pivot.
//   - Stage 3: split the work buffer into L (unit diagonal) and U.
//
// Singularity:
//   - A pivot p is treated as zero when |p| <= eps * max|A[i,j]|,
//     eps from WithEpsilon (DefaultEpsilon otherwise). A zero matrix is singular.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrSingular.
//
// Determinism:
//   - Fixed loop order and tie-breaking; identical inputs give identical factors.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix, opts ...Option) (*LUFactors, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)

	src, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := src.r
	a := make([]float64, n*n)
	copy(a, src.data)

	perm := make([]int, n)
	var scale float64
	for i := range perm {
		perm[i] = i
	}
	for _, v := range a {
		scale = math.Max(scale, math.Abs(v))
	}
	tol := o.eps * scale

	var (
		i, j, k, p int
		best, f    float64
	)
	for k = 0; k < n; k++ {
		// Partial pivot: largest magnitude in column k at or below the diagonal.
		p, best = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(a[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= tol {
			return nil, matrixErrorf(opLU, fmt.Errorf("pivot %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		for i = k + 1; i < n; i++ {
			a[i*n+k] /= a[k*n+k]
			f = a[i*n+k]
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= f * a[k*n+j]
			}
		}
	}

	L, _ := NewDense(n, n)
	U, _ := NewDense(n, n)
	for i = 0; i < n; i++ {
		L.data[i*n+i] = 1
		for j = 0; j < n; j++ {
			if j < i {
				L.data[i*n+j] = a[i*n+j]
			} else {
				U.data[i*n+j] = a[i*n+j]
			}
		}
	}

	return &LUFactors{L: L, U: U, Perm: perm}, nil
}

// Inverse computes A^{-1} from the pivoted LU factorization of A.
// The input must be non-nil, square, finite and non-singular within tolerance.
// Produces a new Dense; does not mutate the input.
//
// Implementation:
//   - Stage 1: LU(m, opts...) → P, L, U.
//   - Stage 2: for each canonical basis column e_col:
//   - b = P·e_col,
//   - forward solve L*y = b (top-down),
//   - backward solve U*x = y (bottom-up),
//   - write x into column col of the result.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf.
//   - ErrNotInvertible joined with ErrNonSquare or ErrSingular.
//
// Determinism:
//   - Fixed traversal (col↑, forward i↑, backward i↓).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - If you only need A^{-1}*b, solving against the LU factors is cheaper
//     than forming A^{-1}.
func Inverse(m Matrix, opts ...Option) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, notInvertible(err))
	}

	f, err := LU(m, opts...)
	if err != nil {
		if isInvertibilityCause(err) {
			return nil, matrixErrorf(opInverse, notInvertible(err))
		}
		return nil, matrixErrorf(opInverse, err)
	}

	n := m.Rows()
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n) // forward substitution workspace
		x         = make([]float64, n) // backward substitution workspace
		ld, ud    = f.L.data, f.U.data
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L*y = P*e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += ld[i*n+k] * y[k]
			}
			if f.Perm[i] == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward substitution: U*x = y; diagonal is non-zero after LU.
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += ud[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / ud[i*n+i]
		}
		for i = 0; i < n; i++ {
			if x[i] == 0 {
				x[i] = 0 // drop negative zero
			}
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// isInvertibilityCause reports whether err stems from a non-square or
// singular input, as opposed to nil or non-finite data.
func isInvertibilityCause(err error) bool {
	return errors.Is(err, ErrSingular) || errors.Is(err, ErrNonSquare)
}
