package gpkern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// assertSymmetricPSD checks that m is a valid covariance matrix for a batch
// compared against itself: square, symmetric, and with no eigenvalue below
// zero (modulo floating-point round-off).
func assertSymmetricPSD(t *testing.T, m *mat.Dense) {
	t.Helper()

	n, c := m.Dims()
	require.Equal(t, n, c, "covariance matrix on identical batches must be square")

	sym := mat.NewSymDense(n, nil)

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			assert.InDelta(t, m.At(j, i), m.At(i, j), 1e-12, "matrix must be symmetric at (%d,%d)", i, j)

			sym.SetSym(i, j, m.At(i, j))
		}
	}

	var eig mat.EigenSym
	require.True(t, eig.Factorize(sym, false))

	for _, v := range eig.Values(nil) {
		assert.GreaterOrEqual(t, v, -1e-9, "eigenvalues must be non-negative")
	}
}

func TestNewFeatureBatch(t *testing.T) {
	x, err := NewFeatureBatch([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	n, d := x.Dims()
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, d)
	assert.Equal(t, 4.0, x.At(1, 1))
}

func TestNewFeatureBatchRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name    string
		vectors [][]float64
	}{
		{name: "empty batch", vectors: nil},
		{name: "empty vector", vectors: [][]float64{{}}},
		{name: "ragged rows", vectors: [][]float64{{1, 2}, {3}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFeatureBatch(tc.vectors)
			assert.ErrorIs(t, err, ErrDimensionMismatch)
		})
	}
}

func TestHyperparameterValidation(t *testing.T) {
	_, err := NewHyperparameter("sigma", math.NaN())
	assert.ErrorIs(t, err, ErrInvalidHyperparameter)

	_, err = NewHyperparameter("", 1.0)
	assert.ErrorIs(t, err, ErrInvalidHyperparameter)

	hp, err := NewHyperparameter("sigma", 0.5)
	require.NoError(t, err)
	assert.Equal(t, "sigma", hp.Name())
	assert.Equal(t, 0.5, hp.Value())

	assert.ErrorIs(t, hp.Set(math.Inf(1)), ErrInvalidHyperparameter)
	assert.Equal(t, 0.5, hp.Value(), "failed Set must not change the value")

	require.NoError(t, hp.Set(2.0))
	assert.Equal(t, 2.0, hp.Value())
}
