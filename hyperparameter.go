package gpkern

import (
	"fmt"
	"math"
	"sync"
)

//////
// Hyperparameters.
//////

// Hyperparameter is a named scalar owned by exactly one covariance function.
// Its value is set once at construction and mutated only by the external
// fitting loop, through whatever representation the adapter hands that loop.
//
// There is deliberately exactly one storage location per hyperparameter: when
// the adapter translates a kernel into a native operator, the operator shares
// the same *Hyperparameter instance instead of copying the value. Two
// out-of-sync copies drifting apart during concurrent fitting iterations is
// exactly the failure mode this rules out.
//
// Thread safety:
// - Value uses a read lock; Set uses a write lock
// - Safe for concurrent access from the fitting loop and evaluation goroutines.
type Hyperparameter struct {
	// mu protects value.
	mu sync.RWMutex

	// name identifies the hyperparameter within its owning kernel
	// (e.g. "sigma", "lengthscale").
	name string

	value float64
}

// NewHyperparameter creates a named hyperparameter with its initial value.
//
// The value must be finite; domain constraints beyond finiteness (positivity,
// non-negativity) are enforced by the kernel constructors that own the
// hyperparameter, because they are properties of the kernel, not of the
// scalar itself.
//
// Returns ErrInvalidHyperparameter if value is NaN or infinite.
func NewHyperparameter(name string, value float64) (*Hyperparameter, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: hyperparameter name must not be empty", ErrInvalidHyperparameter)
	}

	if !isFinite(value) {
		return nil, fmt.Errorf("%w: %s=%v is not finite", ErrInvalidHyperparameter, name, value)
	}

	return &Hyperparameter{name: name, value: value}, nil
}

// Name returns the hyperparameter's name within its owning kernel.
func (h *Hyperparameter) Name() string { return h.name }

// Value returns the current value.
func (h *Hyperparameter) Value() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.value
}

// Set updates the value. It is intended to be called by the external fitting
// loop through the adapter's native representation; because the native
// operator shares this instance, the update is visible to the original kernel
// immediately.
//
// Returns ErrInvalidHyperparameter if value is NaN or infinite.
func (h *Hyperparameter) Set(value float64) error {
	if !isFinite(value) {
		return fmt.Errorf("%w: %s=%v is not finite", ErrInvalidHyperparameter, h.name, value)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.value = value

	return nil
}

// isFinite reports whether v is neither NaN nor an infinity.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
