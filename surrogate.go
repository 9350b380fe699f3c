package gpkern

import "fmt"

//////
// Surrogate model selection.
//////

// SurrogateModel names a surrogate family a campaign can run on.
type SurrogateModel string

const (
	// SurrogateGaussianProcessDefault is a Gaussian process with the
	// runtime's standard Matérn-5/2 kernel.
	SurrogateGaussianProcessDefault SurrogateModel = "gaussian_process_default"

	// SurrogateGaussianProcessComposite is a Gaussian process with the
	// composite kernel built by NewSurrogateKernel.
	SurrogateGaussianProcessComposite SurrogateModel = "gaussian_process_composite"

	// SurrogateRandomForest and SurrogateGradientBoosting are recognized
	// campaign settings served by external engines, not by this one.
	SurrogateRandomForest     SurrogateModel = "random_forest"
	SurrogateGradientBoosting SurrogateModel = "gradient_boosting"
)

// NewSurrogate constructs the Gaussian-process surrogate for a campaign's
// chosen model family. cfg supplies the kernel's initial hyperparameters and
// noise the observation-noise standard deviation.
//
// Tree-ensemble families are valid campaign settings but are fitted by
// external engines; requesting one here fails with ErrUnsupportedSurrogate.
// Unknown names fail the same way.
func NewSurrogate(model SurrogateModel, cfg KernelConfig, noise float64) (*GaussianProcess, error) {
	switch model {
	case SurrogateGaussianProcessDefault:
		kernel, err := NewMaternKernel(cfg.MaternLengthscale, MaternNu52)
		if err != nil {
			return nil, err
		}

		return NewGaussianProcess(kernel, noise)

	case SurrogateGaussianProcessComposite:
		skc, err := NewSurrogateKernel(cfg)
		if err != nil {
			return nil, err
		}

		return NewGaussianProcess(skc.Kernel, noise)

	case SurrogateRandomForest, SurrogateGradientBoosting:
		return nil, fmt.Errorf("%w: %s is served by an external engine", ErrUnsupportedSurrogate, model)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSurrogate, model)
	}
}
