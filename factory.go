package gpkern

import "fmt"

//////
// Surrogate kernel factory.
//////

// KernelConfig names the initial hyperparameter values for the surrogate's
// composite kernel. The values are campaign-independent; a campaign that
// needs different priors supplies its own config rather than editing
// literals.
type KernelConfig struct {
	// Offset is the custom linear kernel's initial sigma.
	Offset float64

	// RQLengthscale is the rational-quadratic kernel's initial lengthscale.
	RQLengthscale float64

	// RQAlpha is the rational-quadratic kernel's scale-mixture parameter.
	RQAlpha float64

	// MaternLengthscale is the Matérn kernel's initial lengthscale.
	MaternLengthscale float64

	// MaternNu is the Matérn kernel's smoothness (0.5, 1.5 or 2.5).
	MaternNu float64
}

// DefaultKernelConfig returns the standard recipe: linear offset sigma=0.01,
// rational-quadratic lengthscale=0.01, Matérn lengthscale=0.1 with nu=1.5.
func DefaultKernelConfig() KernelConfig {
	return KernelConfig{
		Offset:            0.01,
		RQLengthscale:     0.01,
		RQAlpha:           1.0,
		MaternLengthscale: 0.1,
		MaternNu:          MaternNu32,
	}
}

// Validate checks every field against its kernel's domain.
func (c KernelConfig) Validate() error {
	if _, err := NewDotProductKernel(c.Offset); err != nil {
		return fmt.Errorf("offset: %w", err)
	}

	if _, err := NewRationalQuadraticKernel(c.RQLengthscale, c.RQAlpha); err != nil {
		return fmt.Errorf("rational quadratic: %w", err)
	}

	if _, err := NewMaternKernel(c.MaternLengthscale, c.MaternNu); err != nil {
		return fmt.Errorf("matern: %w", err)
	}

	return nil
}

// SurrogateKernelConfig bundles one composite kernel for a one-time handoff
// to the optimization engine's model-construction step. It is read-only from
// this package's perspective once handed over.
type SurrogateKernelConfig struct {
	// Kernel is the composite covariance function the engine instantiates
	// its Gaussian-process surrogate with.
	Kernel *AdditiveKernel
}

// NewSurrogateKernel builds the composite kernel (custom linear-with-offset
// plus rational-quadratic plus Matérn) from cfg and packages it for the
// optimization engine.
//
// Calling it twice yields two independent, non-aliased kernel instances with
// identical initial hyperparameters; mutating one never affects the other.
// There are no side effects beyond allocation.
func NewSurrogateKernel(cfg KernelConfig) (SurrogateKernelConfig, error) {
	dot, err := NewDotProductKernel(cfg.Offset)
	if err != nil {
		return SurrogateKernelConfig{}, fmt.Errorf("offset: %w", err)
	}

	rq, err := NewRationalQuadraticKernel(cfg.RQLengthscale, cfg.RQAlpha)
	if err != nil {
		return SurrogateKernelConfig{}, fmt.Errorf("rational quadratic: %w", err)
	}

	mk, err := NewMaternKernel(cfg.MaternLengthscale, cfg.MaternNu)
	if err != nil {
		return SurrogateKernelConfig{}, fmt.Errorf("matern: %w", err)
	}

	composite, err := NewAdditiveKernel(dot, rq, mk)
	if err != nil {
		return SurrogateKernelConfig{}, err
	}

	return SurrogateKernelConfig{Kernel: composite}, nil
}
