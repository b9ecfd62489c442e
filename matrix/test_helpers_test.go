// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the non-*Dense (At/Set) paths in code under test.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// MustFrom builds a *Dense from row slices or fails the test.
func MustFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err, "NewDenseFrom(%v)", rows)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// MustSet writes m[i,j]=v or fails the test.
func MustSet(t testing.TB, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// DominantDense returns a reproducible n×n matrix with entries in [-1,1)
// plus n on the diagonal. Strict diagonal dominance keeps it invertible.
func DominantDense(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(t, n, n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v := rng.Float64()*2 - 1
			if i == j {
				v += float64(n)
			}
			MustSet(t, m, i, j, v)
		}
	}

	return m
}

// CompareClose fails the test unless a and b agree within rtol/atol.
func CompareClose(t *testing.T, want, got matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, rtol, atol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ:\nwant:\n%v\ngot:\n%v", want, got)
}

// RequireIdentityProduct asserts a·b ≈ I.
func RequireIdentityProduct(t *testing.T, a, b matrix.Matrix, atol float64) {
	t.Helper()
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(a.Rows())
	require.NoError(t, err)
	CompareClose(t, I, p, 0, atol)
}
