// Package matrix_test provides benchmarks for the inversion path, using
// deterministic diagonally dominant Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{16, 32, 64}

// sinks to defeat dead-code elimination
var (
	sinkM  matrix.Matrix
	sinkLU *matrix.LUFactors
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := DominantDense(b, n, 1337)
			B := DominantDense(b, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkLU(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := DominantDense(b, n, 303)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := matrix.LU(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkLU = f
			}
		})
	}
}

func BenchmarkInverse(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := DominantDense(b, n, 505)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				inv, err := matrix.Inverse(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = inv
			}
		})
	}
}
