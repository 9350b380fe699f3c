package gpkern

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//////
// Host-runtime operator vocabulary.
//
// The optimization runtime fits hyperparameters against operators expressed
// in its own vocabulary, not against arbitrary Kernel implementations. The
// types below are that vocabulary; the adapter (adapter.go) translates the
// custom kernel into it.
//////

var (
	linearOperator *LinearOperator
	_              NativeOperator = linearOperator // Check that LinearOperator respects the NativeOperator interface.
	_              Kernel         = linearOperator // Native operators are themselves valid covariance functions.
)

// NativeOperator is a covariance operator in the host runtime's vocabulary.
// Unlike a plain Kernel it carries the runtime's structural conventions:
// batching shape and active input dimensions.
type NativeOperator interface {
	Kernel

	// BatchShape returns the operator's batching shape. An empty shape means
	// a single unbatched operator.
	BatchShape() []int

	// ActiveDims returns the input dimensions the operator reads, or nil if
	// it reads all of them.
	ActiveDims() []int
}

// LinearOperator is the runtime's native linear covariance operator
//
//	k(x, y) = variance·⟨x, y⟩ + bias²
//
// evaluated over the active input dimensions. It is the translation target
// for DotProductKernel: with variance fixed at 1 and bias sharing the custom
// kernel's sigma, the two compute identical covariances.
type LinearOperator struct {
	variance *Hyperparameter
	bias     *Hyperparameter

	batchShape []int
	activeDims []int
}

// NewLinearOperator creates a native linear operator. variance and bias may
// be shared with another kernel's hyperparameters; they are not copied.
func NewLinearOperator(variance, bias *Hyperparameter, batchShape, activeDims []int) (*LinearOperator, error) {
	if variance == nil || bias == nil {
		return nil, fmt.Errorf("%w: linear operator requires variance and bias", ErrInvalidHyperparameter)
	}

	if len(batchShape) != 0 {
		return nil, fmt.Errorf(
			"%w: batch shape %v (only unbatched operators are supported)",
			ErrUnsupportedTranslation, batchShape,
		)
	}

	for _, d := range activeDims {
		if d < 0 {
			return nil, fmt.Errorf("%w: active dimension %d is negative", ErrUnsupportedTranslation, d)
		}
	}

	return &LinearOperator{
		variance:   variance,
		bias:       bias,
		batchShape: batchShape,
		activeDims: activeDims,
	}, nil
}

// Name implements Kernel.
func (op *LinearOperator) Name() string { return "linear" }

// BatchShape implements NativeOperator.
func (op *LinearOperator) BatchShape() []int { return op.batchShape }

// ActiveDims implements NativeOperator.
func (op *LinearOperator) ActiveDims() []int { return op.activeDims }

// Variance returns the slope hyperparameter.
func (op *LinearOperator) Variance() *Hyperparameter { return op.variance }

// Bias returns the offset hyperparameter. When the operator was produced by
// DotProductKernel.ToNative this is the custom kernel's own sigma instance.
func (op *LinearOperator) Bias() *Hyperparameter { return op.bias }

// Hyperparameters implements Kernel. The fitting loop mutates these; any
// kernel sharing them observes the updates directly.
func (op *LinearOperator) Hyperparameters() []*Hyperparameter {
	return []*Hyperparameter{op.variance, op.bias}
}

// Evaluate computes variance·x·yᵀ + bias² over the active dimensions.
func (op *LinearOperator) Evaluate(x, y mat.Matrix) (*mat.Dense, error) {
	n, m, d, err := checkDims(x, y)
	if err != nil {
		return nil, err
	}

	for _, dim := range op.activeDims {
		if dim >= d {
			return nil, fmt.Errorf(
				"%w: active dimension %d out of range for %d-dimensional input",
				ErrDimensionMismatch, dim, d,
			)
		}
	}

	xa, ya := op.selectDims(x, n, d), op.selectDims(y, m, d)

	out := mat.NewDense(n, m, nil)
	out.Mul(xa, ya.T())

	variance := op.variance.Value()
	bias := op.bias.Value()
	offset := bias * bias

	out.Apply(func(_, _ int, v float64) float64 { return variance*v + offset }, out)

	return out, nil
}

// selectDims projects a batch onto the active dimensions. With no active
// dimensions configured the batch is used as-is.
func (op *LinearOperator) selectDims(x mat.Matrix, rows, d int) mat.Matrix {
	if len(op.activeDims) == 0 {
		return x
	}

	out := mat.NewDense(rows, len(op.activeDims), nil)

	for i := 0; i < rows; i++ {
		for j, dim := range op.activeDims {
			out.Set(i, j, x.At(i, dim))
		}
	}

	return out
}
