// Package matrix provides the dense linear algebra behind matrix inversion.
//
// The matrix package provides:
//
//   - Matrix, a minimal interface over mutable two-dimensional float64 arrays,
//     and Dense, its row-major implementation with bounds-checked accessors.
//   - Validators (ValidateNotNil, ValidateSquare, ValidateFinite, ...) that
//     return sentinel errors for errors.Is checks.
//   - Kernels: Mul, LU (Doolittle with partial pivoting) and Inverse.
//   - AllClose for tolerance-based comparison.
//
// Inverse is the inversion capability consumed by package cachematrix. Every
// inversion failure matches ErrNotInvertible, and additionally ErrNonSquare or
// ErrSingular. Numeric tolerance is configured with WithEpsilon.
//
//	a, _ := matrix.NewDenseFrom([][]float64{{4, 7}, {2, 6}})
//	inv, err := matrix.Inverse(a, matrix.WithEpsilon(1e-10))
package matrix
