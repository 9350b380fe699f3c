package gpkern

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	rationalQuadratic *RationalQuadraticKernel
	_                 Kernel = rationalQuadratic // Check that RationalQuadraticKernel respects the Kernel interface.
)

// RationalQuadraticKernel is the rational-quadratic covariance function
//
//	k(x, y) = (1 + r² / (2·alpha·lengthscale²))^(-alpha)
//
// where r is the Euclidean distance between x and y. It behaves like a scale
// mixture of RBF kernels over lengthscales; alpha controls the relative
// weighting of large and small scales.
type RationalQuadraticKernel struct {
	lengthscale *Hyperparameter
	alpha       *Hyperparameter
}

// NewRationalQuadraticKernel creates a rational-quadratic kernel with the
// given initial lengthscale and scale-mixture parameter alpha.
//
// Returns ErrInvalidHyperparameter if either value is not finite and strictly
// positive.
func NewRationalQuadraticKernel(lengthscale, alpha float64) (*RationalQuadraticKernel, error) {
	if lengthscale <= 0 {
		return nil, fmt.Errorf("%w: lengthscale=%v must be positive", ErrInvalidHyperparameter, lengthscale)
	}

	if alpha <= 0 {
		return nil, fmt.Errorf("%w: alpha=%v must be positive", ErrInvalidHyperparameter, alpha)
	}

	ls, err := NewHyperparameter("lengthscale", lengthscale)
	if err != nil {
		return nil, err
	}

	a, err := NewHyperparameter("alpha", alpha)
	if err != nil {
		return nil, err
	}

	return &RationalQuadraticKernel{lengthscale: ls, alpha: a}, nil
}

// Name implements Kernel.
func (k *RationalQuadraticKernel) Name() string { return "rq" }

// Hyperparameters implements Kernel.
func (k *RationalQuadraticKernel) Hyperparameters() []*Hyperparameter {
	return []*Hyperparameter{k.lengthscale, k.alpha}
}

// Evaluate computes the N×M rational-quadratic covariance matrix.
func (k *RationalQuadraticKernel) Evaluate(x, y mat.Matrix) (*mat.Dense, error) {
	n, m, d, err := checkDims(x, y)
	if err != nil {
		return nil, err
	}

	ls := k.lengthscale.Value()
	alpha := k.alpha.Value()
	denom := 2 * alpha * ls * ls

	out := mat.NewDense(n, m, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			out.Set(i, j, math.Pow(1+sqDist(x, y, i, j, d)/denom, -alpha))
		}
	}

	return out, nil
}
