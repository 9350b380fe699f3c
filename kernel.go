package gpkern

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//////
// Covariance function contract.
//////

// Kernel is a covariance function: a pure mathematical object mapping two
// batches of feature vectors to a covariance matrix, parameterized by scalar
// hyperparameters.
//
// Implementations must guarantee that Evaluate(x, x) on identical batches
// yields a symmetric, positive-semi-definite matrix; that is what makes the
// output a valid covariance matrix for a Gaussian process.
type Kernel interface {
	// Name identifies the kernel family (e.g. "dotproduct", "matern").
	Name() string

	// Evaluate computes the N×M covariance matrix between an N×D batch x and
	// an M×D batch y. It fails with ErrDimensionMismatch if the feature
	// dimensions of x and y differ.
	Evaluate(x, y mat.Matrix) (*mat.Dense, error)

	// Hyperparameters lists the kernel's learnable scalars in a fixed order.
	// Structural constants (such as a Matérn smoothness) are not included.
	Hyperparameters() []*Hyperparameter
}

// NamedHyperparameter pairs a hyperparameter with its fully qualified name
// inside a composite kernel (e.g. "matern3.lengthscale").
type NamedHyperparameter struct {
	Name           string
	Hyperparameter *Hyperparameter
}

// NewFeatureBatch builds an N×D feature batch from row vectors. Produced
// batches are treated as immutable once passed to a kernel.
//
// Returns ErrDimensionMismatch if vectors is empty, any row is empty, or the
// rows disagree on length.
func NewFeatureBatch(vectors [][]float64) (*mat.Dense, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: feature batch must contain at least one vector", ErrDimensionMismatch)
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: feature vectors must have at least one dimension", ErrDimensionMismatch)
	}

	data := make([]float64, 0, len(vectors)*dim)

	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf(
				"%w: vector %d has dimension %d, want %d",
				ErrDimensionMismatch, i, len(v), dim,
			)
		}

		data = append(data, v...)
	}

	return mat.NewDense(len(vectors), dim, data), nil
}

// checkDims verifies two batches share the same feature dimension and returns
// (N, M, D) for convenience.
func checkDims(x, y mat.Matrix) (n, m, d int, err error) {
	n, d = x.Dims()

	var dy int
	m, dy = y.Dims()

	if d != dy {
		return 0, 0, 0, fmt.Errorf(
			"%w: x has %d feature dimensions, y has %d",
			ErrDimensionMismatch, d, dy,
		)
	}

	return n, m, d, nil
}

// sqDist computes the squared Euclidean distance between row i of x and
// row j of y. Callers guarantee matching dimensions.
func sqDist(x, y mat.Matrix, i, j, d int) float64 {
	var sum float64

	for k := 0; k < d; k++ {
		diff := x.At(i, k) - y.At(j, k)

		sum += diff * diff
	}

	return sum
}
