package gpkern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder(t *testing.T) *Encoder {
	t.Helper()

	temp, err := NewContinuousParameter("temperature", ParameterRange[float64]{Min: 20, Max: 120})
	require.NoError(t, err)

	conc, err := NewRegularDiscreteParameter("concentration", ParameterRange[int]{Min: 0, Max: 10}, 2)
	require.NoError(t, err)

	solvent, err := NewCategoricalParameter("solvent", []string{"water", "ethanol", "acetone"})
	require.NoError(t, err)

	enc, err := NewEncoder(temp, conc, solvent)
	require.NoError(t, err)

	return enc
}

func TestEncoderWidth(t *testing.T) {
	enc := newTestEncoder(t)

	// 1 continuous + 1 discrete + 3 one-hot columns.
	assert.Equal(t, 5, enc.Width())
}

func TestEncoderEncodesRecords(t *testing.T) {
	enc := newTestEncoder(t)

	batch, err := enc.Encode([]map[string]any{
		{"temperature": 70.0, "concentration": 4, "solvent": "ethanol"},
		{"temperature": 20.0, "concentration": 10, "solvent": "water", "yield": 0.82},
	})
	require.NoError(t, err)

	n, d := batch.Dims()
	require.Equal(t, 2, n)
	require.Equal(t, 5, d)

	// Row 0: midpoint temperature, concentration 4 of [0..10], one-hot ethanol.
	assert.InDelta(t, 0.5, batch.At(0, 0), 1e-9)
	assert.InDelta(t, 0.4, batch.At(0, 1), 1e-9)
	assert.Equal(t, []float64{0, 1, 0}, []float64{batch.At(0, 2), batch.At(0, 3), batch.At(0, 4)})

	// Row 1: range minimum, grid maximum, one-hot water. The extra "yield"
	// key is a target measurement and is ignored.
	assert.InDelta(t, 0.0, batch.At(1, 0), 1e-9)
	assert.InDelta(t, 1.0, batch.At(1, 1), 1e-9)
	assert.Equal(t, []float64{1, 0, 0}, []float64{batch.At(1, 2), batch.At(1, 3), batch.At(1, 4)})
}

func TestEncoderOutputFeedsKernels(t *testing.T) {
	enc := newTestEncoder(t)

	batch, err := enc.Encode([]map[string]any{
		{"temperature": 30.0, "concentration": 0, "solvent": "water"},
		{"temperature": 80.0, "concentration": 6, "solvent": "acetone"},
		{"temperature": 110.0, "concentration": 2, "solvent": "ethanol"},
	})
	require.NoError(t, err)

	skc, err := NewSurrogateKernel(DefaultKernelConfig())
	require.NoError(t, err)

	cov, err := skc.Kernel.Evaluate(batch, batch)
	require.NoError(t, err)

	assertSymmetricPSD(t, cov)
}

func TestEncoderRejectsBadRecords(t *testing.T) {
	enc := newTestEncoder(t)

	cases := []struct {
		name   string
		record map[string]any
		want   error
	}{
		{
			name:   "missing parameter",
			record: map[string]any{"temperature": 70.0, "solvent": "water"},
			want:   ErrUnknownParameter,
		},
		{
			name:   "out-of-range continuous value",
			record: map[string]any{"temperature": 500.0, "concentration": 4, "solvent": "water"},
			want:   ErrInvalidHyperparameter,
		},
		{
			name:   "off-grid discrete value",
			record: map[string]any{"temperature": 70.0, "concentration": 3, "solvent": "water"},
			want:   ErrInvalidHyperparameter,
		},
		{
			name:   "unknown category",
			record: map[string]any{"temperature": 70.0, "concentration": 4, "solvent": "benzene"},
			want:   ErrInvalidHyperparameter,
		},
		{
			name:   "non-numeric where numeric expected",
			record: map[string]any{"temperature": "hot", "concentration": 4, "solvent": "water"},
			want:   ErrInvalidHyperparameter,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enc.Encode([]map[string]any{tc.record})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEncoderRejectsEmptyInput(t *testing.T) {
	enc := newTestEncoder(t)

	_, err := enc.Encode(nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNewEncoderRejectsDuplicateNames(t *testing.T) {
	a, err := NewContinuousParameter("x", ParameterRange[float64]{Min: 0, Max: 1})
	require.NoError(t, err)

	b, err := NewContinuousParameter("x", ParameterRange[float64]{Min: 0, Max: 2})
	require.NoError(t, err)

	_, err = NewEncoder(a, b)
	assert.ErrorIs(t, err, ErrUnknownParameter)
}

func TestParameterRangeValidate(t *testing.T) {
	assert.Error(t, ParameterRange[float64]{Min: 1, Max: 1}.Validate())
	assert.Error(t, ParameterRange[int]{Min: 5, Max: 2}.Validate())
	assert.NoError(t, ParameterRange[float64]{Min: 0, Max: 0.1}.Validate())
}

func TestRegularDiscreteParameterGrid(t *testing.T) {
	p, err := NewRegularDiscreteParameter("ratio", ParameterRange[float64]{Min: 0, Max: 1}, 0.25)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, p.Values())

	_, err = NewRegularDiscreteParameter("ratio", ParameterRange[float64]{Min: 0, Max: 1}, -0.25)
	assert.ErrorIs(t, err, ErrInvalidHyperparameter)
}

func TestCategoricalParameterRejectsDuplicates(t *testing.T) {
	_, err := NewCategoricalParameter("solvent", []string{"water", "water"})
	assert.ErrorIs(t, err, ErrInvalidHyperparameter)
}
