package gpkern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKernelConfig(t *testing.T) {
	cfg := DefaultKernelConfig()

	assert.Equal(t, 0.01, cfg.Offset)
	assert.Equal(t, 0.01, cfg.RQLengthscale)
	assert.Equal(t, 1.0, cfg.RQAlpha)
	assert.Equal(t, 0.1, cfg.MaternLengthscale)
	assert.Equal(t, MaternNu32, cfg.MaternNu)

	assert.NoError(t, cfg.Validate())
}

func TestKernelConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*KernelConfig)
	}{
		{name: "negative offset", mutate: func(c *KernelConfig) { c.Offset = -1 }},
		{name: "zero RQ lengthscale", mutate: func(c *KernelConfig) { c.RQLengthscale = 0 }},
		{name: "zero RQ alpha", mutate: func(c *KernelConfig) { c.RQAlpha = 0 }},
		{name: "negative Matérn lengthscale", mutate: func(c *KernelConfig) { c.MaternLengthscale = -0.1 }},
		{name: "unsupported Matérn smoothness", mutate: func(c *KernelConfig) { c.MaternNu = 2.0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultKernelConfig()
			tc.mutate(&cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidHyperparameter)
		})
	}
}

func TestNewSurrogateKernelRecipe(t *testing.T) {
	skc, err := NewSurrogateKernel(DefaultKernelConfig())
	require.NoError(t, err)
	require.NotNil(t, skc.Kernel)

	parts := skc.Kernel.Parts()
	require.Len(t, parts, 3)

	assert.IsType(t, (*DotProductKernel)(nil), parts[0])
	assert.IsType(t, (*RationalQuadraticKernel)(nil), parts[1])
	assert.IsType(t, (*MaternKernel)(nil), parts[2])

	named := skc.Kernel.NamedHyperparameters()
	require.Len(t, named, 4)

	assert.Equal(t, "dotproduct1.sigma", named[0].Name)
	assert.Equal(t, "rq2.lengthscale", named[1].Name)
	assert.Equal(t, "rq2.alpha", named[2].Name)
	assert.Equal(t, "matern3.lengthscale", named[3].Name)

	assert.Equal(t, 0.01, named[0].Hyperparameter.Value())
	assert.Equal(t, 0.01, named[1].Hyperparameter.Value())
	assert.Equal(t, 1.0, named[2].Hyperparameter.Value())
	assert.Equal(t, 0.1, named[3].Hyperparameter.Value())
}

func TestNewSurrogateKernelIdempotence(t *testing.T) {
	first, err := NewSurrogateKernel(DefaultKernelConfig())
	require.NoError(t, err)

	second, err := NewSurrogateKernel(DefaultKernelConfig())
	require.NoError(t, err)

	require.NotSame(t, first.Kernel, second.Kernel)

	a := first.Kernel.NamedHyperparameters()
	b := second.Kernel.NamedHyperparameters()
	require.Len(t, b, len(a))

	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Hyperparameter.Value(), b[i].Hyperparameter.Value())
		assert.NotSame(t, a[i].Hyperparameter, b[i].Hyperparameter)
	}

	// Mutating one instance never affects the other.
	require.NoError(t, a[0].Hyperparameter.Set(0.5))
	assert.Equal(t, 0.01, b[0].Hyperparameter.Value())
}

func TestNewSurrogateKernelRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultKernelConfig()
	cfg.Offset = -1

	_, err := NewSurrogateKernel(cfg)
	assert.ErrorIs(t, err, ErrInvalidHyperparameter)
}

func TestNewSurrogateKernelEvaluates(t *testing.T) {
	skc, err := NewSurrogateKernel(DefaultKernelConfig())
	require.NoError(t, err)

	x, err := NewFeatureBatch([][]float64{{0.2, 0.8}, {0.6, 0.4}, {0.9, 0.1}})
	require.NoError(t, err)

	cov, err := skc.Kernel.Evaluate(x, x)
	require.NoError(t, err)

	assertSymmetricPSD(t, cov)
}
