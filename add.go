package gpkern

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	additive *AdditiveKernel
	_        Kernel = additive // Check that AdditiveKernel respects the Kernel interface.
)

// AdditiveKernel combines an ordered set of covariance functions by pointwise
// summation of their output matrices. A sum of positive-semi-definite
// matrices is positive-semi-definite, so the composite stays a valid
// covariance function as long as every part is one.
//
// The ordering is irrelevant to the result but fixed at construction: it makes
// hyperparameter enumeration reproducible across runs. Sub-kernels are owned
// exclusively by the composite.
type AdditiveKernel struct {
	parts []Kernel
}

// NewAdditiveKernel creates a composite kernel from one or more parts, in the
// given order. Nested additive kernels are flattened, so
// Add(Add(a, b), c) holds the parts [a, b, c].
func NewAdditiveKernel(parts ...Kernel) (*AdditiveKernel, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: additive kernel needs at least one part", ErrInvalidHyperparameter)
	}

	flat := make([]Kernel, 0, len(parts))

	for _, part := range parts {
		switch part := part.(type) {
		case *AdditiveKernel:
			flat = append(flat, part.parts...)
		default:
			flat = append(flat, part)
		}
	}

	return &AdditiveKernel{parts: flat}, nil
}

// Name implements Kernel.
func (k *AdditiveKernel) Name() string { return "additive" }

// Parts returns the sub-kernels in their fixed order.
func (k *AdditiveKernel) Parts() []Kernel { return k.parts }

// Hyperparameters implements Kernel: the union of all sub-kernels'
// hyperparameters in sub-kernel order.
func (k *AdditiveKernel) Hyperparameters() []*Hyperparameter {
	var out []*Hyperparameter

	for _, part := range k.parts {
		out = append(out, part.Hyperparameters()...)
	}

	return out
}

// NamedHyperparameters enumerates every sub-kernel's hyperparameters with
// names namespaced by sub-kernel identity. The sub-kernel's position in the
// fixed ordering disambiguates multiple kernels of the same family, so two
// Matérn parts yield "matern2.lengthscale" and "matern3.lengthscale" rather
// than colliding.
func (k *AdditiveKernel) NamedHyperparameters() []NamedHyperparameter {
	var out []NamedHyperparameter

	for i, part := range k.parts {
		for _, hp := range part.Hyperparameters() {
			out = append(out, NamedHyperparameter{
				Name:           fmt.Sprintf("%s%d.%s", part.Name(), i+1, hp.Name()),
				Hyperparameter: hp,
			})
		}
	}

	return out
}

// Evaluate routes the same batch pair to every sub-kernel and sums the
// results element-wise. A sub-kernel failure is wrapped in a *SubKernelError
// identifying the origin.
func (k *AdditiveKernel) Evaluate(x, y mat.Matrix) (*mat.Dense, error) {
	n, m, _, err := checkDims(x, y)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(n, m, nil)

	for i, part := range k.parts {
		cov, err := part.Evaluate(x, y)
		if err != nil {
			return nil, &SubKernelError{Index: i, Kernel: part.Name(), Err: err}
		}

		out.Add(out, cov)
	}

	return out, nil
}
