package matrix_test

import (
	"errors"
	"fmt"

	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

// ExampleInverse inverts a 2×2 matrix.
func ExampleInverse() {
	a, _ := matrix.NewDenseFrom([][]float64{{2, 0}, {0, 4}})
	inv, _ := matrix.Inverse(a)
	fmt.Print(inv)

	// Output:
	// [0.5, 0]
	// [0, 0.25]
}

// ExampleInverse_singular shows how inversion failures are matched.
func ExampleInverse_singular() {
	a, _ := matrix.NewDenseFrom([][]float64{{1, 2}, {2, 4}})
	_, err := matrix.Inverse(a)
	fmt.Println(errors.Is(err, matrix.ErrNotInvertible), errors.Is(err, matrix.ErrSingular))

	// Output:
	// true true
}
