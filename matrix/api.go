// SPDX-License-Identifier: MIT
// Package matrix - public API facades and comparison helpers.
//
// Purpose:
//   - Provide thin entry points for common constructors.
//   - Provide tolerance-based comparison (AllClose) for callers and tests.

package matrix

import "math"

const opAllClose = "AllClose"

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN never compares close.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances yield ErrNaNInf.
//
// Complexity: Time O(r*c), Space O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	ad, err := denseOf(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	bd, err := denseOf(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range ad.data {
		// !(x <= y) also rejects NaN on either side.
		if !(math.Abs(ad.data[idx]-bd.data[idx]) <= atol+rtol*math.Abs(bd.data[idx])) {
			return false, nil
		}
	}

	return true, nil
}
