package gpkern

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	matern *MaternKernel
	_      Kernel = matern // Check that MaternKernel respects the Kernel interface.
)

// Supported Matérn smoothness values. Half-integer smoothness admits the
// closed-form expressions below; other values require modified Bessel
// functions and are not provided.
const (
	MaternNu12 = 0.5
	MaternNu32 = 1.5
	MaternNu52 = 2.5
)

// MaternKernel is the Matérn covariance function for half-integer smoothness
// nu ∈ {1/2, 3/2, 5/2}. With z = sqrt(2·nu)·r/lengthscale:
//
//	nu = 1/2:  k = exp(-z)
//	nu = 3/2:  k = (1 + z)·exp(-z)
//	nu = 5/2:  k = (1 + z + z²/3)·exp(-z)
//
// nu is structural: it selects the kernel's smoothness class and is fixed at
// construction, not exposed as a learnable hyperparameter. The lengthscale
// is learnable.
type MaternKernel struct {
	lengthscale *Hyperparameter
	nu          float64
}

// NewMaternKernel creates a Matérn kernel with the given initial lengthscale
// and smoothness nu.
//
// Returns ErrInvalidHyperparameter if lengthscale is not finite and strictly
// positive, or if nu is not one of MaternNu12, MaternNu32, MaternNu52.
func NewMaternKernel(lengthscale, nu float64) (*MaternKernel, error) {
	if lengthscale <= 0 {
		return nil, fmt.Errorf("%w: lengthscale=%v must be positive", ErrInvalidHyperparameter, lengthscale)
	}

	switch nu {
	case MaternNu12, MaternNu32, MaternNu52:
	default:
		return nil, fmt.Errorf("%w: nu=%v must be one of 0.5, 1.5, 2.5", ErrInvalidHyperparameter, nu)
	}

	ls, err := NewHyperparameter("lengthscale", lengthscale)
	if err != nil {
		return nil, err
	}

	return &MaternKernel{lengthscale: ls, nu: nu}, nil
}

// Name implements Kernel.
func (k *MaternKernel) Name() string { return "matern" }

// Nu returns the kernel's fixed smoothness.
func (k *MaternKernel) Nu() float64 { return k.nu }

// Hyperparameters implements Kernel.
func (k *MaternKernel) Hyperparameters() []*Hyperparameter {
	return []*Hyperparameter{k.lengthscale}
}

// Evaluate computes the N×M Matérn covariance matrix.
func (k *MaternKernel) Evaluate(x, y mat.Matrix) (*mat.Dense, error) {
	n, m, d, err := checkDims(x, y)
	if err != nil {
		return nil, err
	}

	ls := k.lengthscale.Value()
	scale := math.Sqrt(2*k.nu) / ls

	out := mat.NewDense(n, m, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			z := scale * math.Sqrt(sqDist(x, y, i, j, d))

			var v float64

			switch k.nu {
			case MaternNu12:
				v = math.Exp(-z)
			case MaternNu32:
				v = (1 + z) * math.Exp(-z)
			case MaternNu52:
				v = (1 + z + z*z/3) * math.Exp(-z)
			}

			out.Set(i, j, v)
		}
	}

	return out, nil
}
