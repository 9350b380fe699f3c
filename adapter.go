package gpkern

import "fmt"

//////
// Runtime adapter.
//////

// AdapterArgs carries the host runtime's structural conventions for an
// operator: output dimensionality, batching shape, and the input dimensions
// the operator should read. They mirror the arguments the runtime passes when
// it asks a kernel for its native form.
type AdapterArgs struct {
	// ARDNumDims is the number of input dimensions for per-dimension
	// (ARD) lengthscales. A linear operator has no lengthscales, so the
	// value does not affect the translation; it is accepted for interface
	// compatibility with the runtime's calling convention.
	ARDNumDims int

	// BatchShape is the runtime's batching shape for the operator. Only the
	// empty (unbatched) shape has a safe native equivalent here.
	BatchShape []int

	// ActiveDims restricts the operator to a subset of input dimensions.
	// nil means all dimensions.
	ActiveDims []int
}

// ToNative translates the custom kernel into the runtime's native linear
// operator so the runtime's automatic differentiation and hyperparameter
// optimization can operate on it as if it were native.
//
// Translation policy: exact, never approximate. The custom kernel's sigma has
// no counterpart in a plain native linear operator, so it is reintroduced as
// the operator's bias term rather than dropped: dropping it would silently
// degrade model fit without signaling failure. The bias is the same
// Hyperparameter instance as the kernel's sigma (not a copy), which keeps one
// source of truth while the fitting loop mutates it; the variance is a fresh
// hyperparameter fixed at 1 so the operator computes exactly
// sigma² + ⟨x, y⟩.
//
// Returns ErrUnsupportedTranslation if args request a batching/active-
// dimension combination with no safe native equivalent.
func (k *DotProductKernel) ToNative(args AdapterArgs) (*LinearOperator, error) {
	variance, err := NewHyperparameter("variance", 1.0)
	if err != nil {
		return nil, err
	}

	op, err := NewLinearOperator(variance, k.sigma, args.BatchShape, args.ActiveDims)
	if err != nil {
		return nil, fmt.Errorf("translating %s kernel: %w", k.Name(), err)
	}

	return op, nil
}
