package gpkern

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

//////
// Const, vars, types.
//////

// GaussianProcess is a thread-safe Gaussian-process regressor conditioned on
// observed experiments, parameterized by any covariance function from this
// package. It is the runtime-side consumer of a SurrogateKernelConfig: the
// optimization engine constructs one per campaign surrogate, feeds it
// completed experiments, and queries posterior mean and variance at candidate
// points.
//
// It deliberately does no hyperparameter training and no next-experiment
// selection; those belong to the external fitting and acquisition loops.
//
// Thread safety:
// - All fields are protected by the RWMutex
// - Uses RLock for read operations (Predict, Observations)
// - Uses Lock for write operations (Update)
//
// Memory usage grows linearly with the number of observations; prediction
// cost grows with the cube (one Cholesky factorization per call).
type GaussianProcess struct {
	// mu protects access to all fields.
	mu sync.RWMutex

	// kernel is the covariance function defining the prior.
	kernel Kernel

	// noise is the observation-noise standard deviation added to the
	// covariance diagonal. It also keeps the factorization numerically
	// stable.
	noise float64

	// x stores the observed input points. Length of inner slices must be
	// consistent.
	x [][]float64

	// y stores the observed target values at each point in x.
	y []float64
}

//////
// Methods.
//////

// Update adds one observation to the model. The input slice is copied, so the
// caller may reuse it.
//
// Returns ErrDimensionMismatch if x is empty or disagrees with the dimension
// of earlier observations.
func (gp *GaussianProcess) Update(x []float64, y float64) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: observation must have at least one dimension", ErrDimensionMismatch)
	}

	gp.mu.Lock()
	defer gp.mu.Unlock()

	if len(gp.x) > 0 && len(x) != len(gp.x[0]) {
		return fmt.Errorf(
			"%w: observation has dimension %d, model has %d",
			ErrDimensionMismatch, len(x), len(gp.x[0]),
		)
	}

	// Deep copy to prevent external modifications.
	newX := make([]float64, len(x))
	copy(newX, x)

	gp.x = append(gp.x, newX)
	gp.y = append(gp.y, y)

	return nil
}

// Observations returns the number of observations the model is conditioned
// on.
func (gp *GaussianProcess) Observations() int {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	return len(gp.x)
}

// Predict returns the posterior mean and variance at x given the observations
// so far. With no observations it returns the prior: mean 0 and variance
// k(x, x).
//
// Mathematical details, with K the kernel matrix over observed inputs plus
// noise² on the diagonal and k* the covariances between x and the observed
// inputs:
//
//	mean     = k*ᵀ K⁻¹ y
//	variance = k(x, x) − k*ᵀ K⁻¹ k*
//
// K⁻¹ is never formed; both terms go through one Cholesky factorization.
func (gp *GaussianProcess) Predict(x []float64) (mean, variance float64, err error) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	query, err := NewFeatureBatch([][]float64{x})
	if err != nil {
		return 0, 0, err
	}

	kxx, err := gp.kernel.Evaluate(query, query)
	if err != nil {
		return 0, 0, err
	}

	// Prior when nothing has been observed yet.
	if len(gp.x) == 0 {
		return 0, kxx.At(0, 0), nil
	}

	observed, err := NewFeatureBatch(gp.x)
	if err != nil {
		return 0, 0, err
	}

	cov, err := gp.kernel.Evaluate(observed, observed)
	if err != nil {
		return 0, 0, err
	}

	n := len(gp.x)

	// Kernel matrix plus observation noise on the diagonal.
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := cov.At(i, j)
			if i == j {
				v += gp.noise * gp.noise
			}

			sym.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return 0, 0, fmt.Errorf(
			"%w: kernel matrix is not positive definite at %d observations",
			ErrInvalidHyperparameter, n,
		)
	}

	kstarMat, err := gp.kernel.Evaluate(observed, query)
	if err != nil {
		return 0, 0, err
	}

	kstar := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		kstar.SetVec(i, kstarMat.At(i, 0))
	}

	alpha := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(alpha, mat.NewVecDense(n, append([]float64(nil), gp.y...))); err != nil {
		return 0, 0, fmt.Errorf("gpkern: solving for posterior mean: %w", err)
	}

	mean = mat.Dot(kstar, alpha)

	v := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(v, kstar); err != nil {
		return 0, 0, fmt.Errorf("gpkern: solving for posterior variance: %w", err)
	}

	// Numerical round-off can push the variance a hair below zero.
	variance = math.Max(0, kxx.At(0, 0)-mat.Dot(kstar, v))

	return mean, variance, nil
}

//////
// Factory.
//////

// NewGaussianProcess creates a Gaussian-process regressor with the given
// covariance function and observation-noise standard deviation.
//
// A strictly positive noise is required: besides modeling measurement noise,
// it keeps the kernel matrix positive definite once near-duplicate
// experiments are observed.
func NewGaussianProcess(kernel Kernel, noise float64) (*GaussianProcess, error) {
	if kernel == nil {
		return nil, fmt.Errorf("%w: kernel must not be nil", ErrInvalidHyperparameter)
	}

	if !isFinite(noise) || noise <= 0 {
		return nil, fmt.Errorf("%w: noise=%v must be finite and positive", ErrInvalidHyperparameter, noise)
	}

	return &GaussianProcess{
		kernel: kernel,
		noise:  noise,
	}, nil
}
