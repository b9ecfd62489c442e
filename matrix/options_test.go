// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlexOcculate/ProgrammingAssignment2/matrix"
)

func TestOptions_Defaults(t *testing.T) {
	o := matrix.NewMatrixOptions()
	assert.Equal(t, matrix.DefaultEpsilon, o.Epsilon())
	assert.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf())
}

func TestOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewMatrixOptions(
		matrix.WithEpsilon(1e-3),
		matrix.WithNoValidateNaNInf(),
		matrix.WithEpsilon(1e-6),
		nil,
	)
	assert.Equal(t, 1e-6, o.Epsilon())
	assert.False(t, o.ValidateNaNInf())

	o = matrix.NewMatrixOptions(matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	assert.True(t, o.ValidateNaNInf())
}

func TestWithEpsilon_PanicsOnInvalid(t *testing.T) {
	for _, eps := range []float64{-1, math.NaN(), math.Inf(1)} {
		assert.Panics(t, func() { matrix.WithEpsilon(eps) }, "eps=%v", eps)
	}
	assert.NotPanics(t, func() { matrix.WithEpsilon(0) })
}
