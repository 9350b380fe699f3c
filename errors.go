package gpkern

import (
	"errors"
	"fmt"
)

//////
// Error taxonomy.
//
// Every failure surfaces immediately to the caller. A silently degraded
// covariance function corrupts optimization results without detection, so
// nothing in this package recovers from an error on the caller's behalf.
//////

var (
	// ErrDimensionMismatch indicates two feature batches (or a batch and a
	// vector) disagree on the feature dimension, or a batch is malformed.
	ErrDimensionMismatch = errors.New("gpkern: feature dimensions do not match")

	// ErrInvalidHyperparameter indicates a hyperparameter value is non-finite
	// or outside its domain (e.g. a negative offset, a zero lengthscale).
	ErrInvalidHyperparameter = errors.New("gpkern: invalid hyperparameter value")

	// ErrUnsupportedTranslation indicates the adapter cannot produce a native
	// operator for the requested batching/active-dimension combination.
	ErrUnsupportedTranslation = errors.New("gpkern: no native operator equivalent for requested shape")

	// ErrSubKernelFailure indicates a sub-kernel of an additive kernel failed.
	// The returned error is a *SubKernelError identifying which one.
	ErrSubKernelFailure = errors.New("gpkern: sub-kernel evaluation failed")

	// ErrUnsupportedSurrogate indicates a surrogate model family this engine
	// does not provide (e.g. tree ensembles).
	ErrUnsupportedSurrogate = errors.New("gpkern: unsupported surrogate model")

	// ErrUnknownParameter indicates an experiment record references a
	// parameter the encoder was not configured with, or omits a required one.
	ErrUnknownParameter = errors.New("gpkern: unknown or missing parameter")
)

// SubKernelError wraps a failure raised inside an additive kernel, preserving
// which sub-kernel failed and the original error.
//
// It matches ErrSubKernelFailure via errors.Is, and errors.Unwrap yields the
// sub-kernel's own error, so the origin is never masked.
type SubKernelError struct {
	// Index is the position of the failing sub-kernel in the additive
	// kernel's fixed ordering.
	Index int

	// Kernel is the failing sub-kernel's name (e.g. "matern").
	Kernel string

	// Err is the error the sub-kernel returned.
	Err error
}

// Error implements the error interface.
func (e *SubKernelError) Error() string {
	return fmt.Sprintf("gpkern: sub-kernel %d (%s): %v", e.Index, e.Kernel, e.Err)
}

// Unwrap returns the sub-kernel's original error.
func (e *SubKernelError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSubKernelFailure, so callers can detect the
// failure class without losing the wrapped origin.
func (e *SubKernelError) Is(target error) bool { return target == ErrSubKernelFailure }
