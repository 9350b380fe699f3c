// Package gpkern provides the composite covariance-function engine behind
// Gaussian-process surrogates for Bayesian experimental-design campaigns:
// a custom linear-with-offset kernel defined from first principles, standard
// rational-quadratic and Matérn covariance families, additive composition,
// and an adapter that translates the custom kernel into the optimization
// runtime's native operator vocabulary so its hyperparameters participate in
// gradient-based model fitting.
//
// # Features
//
// The package includes the following key features:
//
//   - Custom Kernel: A positive-semi-definite linear-with-offset covariance
//     function, k(x, y) = sigma² + ⟨x, y⟩, with a learnable offset
//   - Standard Kernels: Rational-quadratic and half-integer Matérn
//     covariance functions with configurable lengthscale and smoothness
//   - Additive Composition: Element-wise summation of an ordered set of
//     kernels with namespaced hyperparameter enumeration
//   - Runtime Adapter: Exact translation of the custom kernel into a native
//     linear operator, sharing hyperparameter storage so fitting updates are
//     never copied
//   - Surrogate Factory: A reusable, validated recipe packaging the composite
//     kernel for the optimization engine's model-construction step
//   - Gaussian Process: A thread-safe posterior regressor consuming any
//     kernel from this package
//   - Parameter Encoding: Continuous, discrete, and categorical campaign
//     parameters mapped to normalized feature vectors
//   - Structured Errors: Dimension, hyperparameter, translation, and
//     sub-kernel failures surface immediately and identify their origin
//
// # Building the surrogate kernel
//
// The factory builds the standard composite recipe (custom linear-with-offset
// plus rational-quadratic plus Matérn) from an explicit, validated config:
//
//	cfg := gpkern.DefaultKernelConfig()
//
//	skc, err := gpkern.NewSurrogateKernel(cfg)
//	if err != nil {
//	    return err
//	}
//
//	gp, err := gpkern.NewGaussianProcess(skc.Kernel, 0.01)
//
// Each factory call yields an independent kernel: two campaigns never share
// hyperparameter state.
//
// # Adapting the custom kernel
//
// The optimization runtime differentiates through operators in its own
// vocabulary. The custom kernel translates into the native linear operator
// without dropping its offset:
//
//	dot, _ := gpkern.NewDotProductKernel(0.01)
//
//	op, err := dot.ToNative(gpkern.AdapterArgs{})
//	if err != nil {
//	    return err
//	}
//
//	// op.Bias() is dot.Sigma(): the same instance, one source of truth.
//
// # Thread safety
//
// Constructed kernels are safe for concurrent evaluation. Hyperparameters are
// RWMutex-guarded scalars with a single storage location each; the fitting
// loop mutates them through the adapter's native representation and every
// kernel sharing them observes the update. Factory calls are safe
// concurrently and produce unaliased instances.
//
// # Scope
//
// The package is purely computational: no I/O, no persistence, no campaign
// state. Model training (hyperparameter optimization) and next-experiment
// selection belong to the external optimization engine consuming the
// SurrogateKernelConfig.
package gpkern
