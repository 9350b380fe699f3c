package gpkern

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	dotProduct *DotProductKernel
	_          Kernel = dotProduct // Check that DotProductKernel respects the Kernel interface.
)

// DotProductKernel is the custom linear-with-offset covariance function
//
//	k(x, y) = sigma² + ⟨x, y⟩
//
// i.e. the Gram matrix of the two batches plus a constant offset. The Gram
// matrix is positive-semi-definite and the constant offset sigma² is
// non-negative, so the sum is always a valid covariance matrix on identical
// batches.
//
// sigma is the kernel's single learnable hyperparameter. It is stored in one
// place only; the native operator produced by ToNative shares the same
// Hyperparameter instance, so the fitting loop's updates are never copied or
// recomputed here.
type DotProductKernel struct {
	sigma *Hyperparameter
}

// NewDotProductKernel creates the linear-with-offset kernel.
//
// Returns ErrInvalidHyperparameter if sigma is not a finite non-negative
// value.
func NewDotProductKernel(sigma float64) (*DotProductKernel, error) {
	if sigma < 0 {
		return nil, fmt.Errorf("%w: sigma=%v must be non-negative", ErrInvalidHyperparameter, sigma)
	}

	hp, err := NewHyperparameter("sigma", sigma)
	if err != nil {
		return nil, err
	}

	return &DotProductKernel{sigma: hp}, nil
}

// Name implements Kernel.
func (k *DotProductKernel) Name() string { return "dotproduct" }

// Sigma returns the offset hyperparameter.
func (k *DotProductKernel) Sigma() *Hyperparameter { return k.sigma }

// Hyperparameters implements Kernel.
func (k *DotProductKernel) Hyperparameters() []*Hyperparameter {
	return []*Hyperparameter{k.sigma}
}

// Evaluate computes sigma² + x·yᵀ for an N×D batch x and an M×D batch y.
func (k *DotProductKernel) Evaluate(x, y mat.Matrix) (*mat.Dense, error) {
	n, m, _, err := checkDims(x, y)
	if err != nil {
		return nil, err
	}

	// Gram matrix of the two batches.
	out := mat.NewDense(n, m, nil)
	out.Mul(x, y.T())

	// Read sigma once so every element of one evaluation sees the same
	// value even if the fitting loop updates it concurrently.
	offset := k.sigma.Value()
	offset *= offset

	out.Apply(func(_, _ int, v float64) float64 { return v + offset }, out)

	return out, nil
}
