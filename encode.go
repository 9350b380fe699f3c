package gpkern

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

//////
// Parameter encoding.
//
// A campaign describes experiments in its own vocabulary (temperatures,
// concentrations, solvent names); the kernels above see only feature
// vectors. The encoder owns that translation: each parameter spec maps its
// value to one or more feature columns, and the assembled rows become the
// FeatureBatch handed to the surrogate.
//////

// ParameterRange defines the valid range for a numeric campaign parameter.
// The range is inclusive of both Min and Max.
//
// Type Parameter:
//   - T: The numeric type for this parameter range (integer or float)
type ParameterRange[T constraints.Integer | constraints.Float] struct {
	// Min defines the minimum allowed value (inclusive) for this parameter.
	Min T

	// Max defines the maximum allowed value (inclusive) for this parameter.
	Max T
}

// Validate checks that the range is well-formed (Min strictly below Max; a
// degenerate range would encode every value to the same feature and carry no
// information).
func (r ParameterRange[T]) Validate() error {
	if !(r.Min < r.Max) {
		return fmt.Errorf("%w: range [%v, %v] must have Min < Max", ErrInvalidHyperparameter, r.Min, r.Max)
	}

	return nil
}

// ParameterSpec encodes one campaign parameter into feature columns.
type ParameterSpec interface {
	// Name is the parameter's name as it appears in experiment records.
	Name() string

	// Width is the number of feature columns the parameter occupies.
	Width() int

	// Encode writes the feature encoding of value into dst, which has
	// exactly Width elements.
	Encode(value any, dst []float64) error
}

var (
	_ ParameterSpec = (*ContinuousParameter)(nil)
	_ ParameterSpec = (*DiscreteParameter)(nil)
	_ ParameterSpec = (*CategoricalParameter)(nil)
)

// ContinuousParameter is a real-valued parameter on an inclusive range,
// encoded min-max normalized to [0, 1] so that kernel lengthscales are
// comparable across parameters with different physical units.
type ContinuousParameter struct {
	name string
	rng  ParameterRange[float64]
}

// NewContinuousParameter creates a continuous parameter spec.
func NewContinuousParameter(name string, rng ParameterRange[float64]) (*ContinuousParameter, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: parameter name must not be empty", ErrUnknownParameter)
	}

	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}

	return &ContinuousParameter{name: name, rng: rng}, nil
}

// Name implements ParameterSpec.
func (p *ContinuousParameter) Name() string { return p.name }

// Width implements ParameterSpec.
func (p *ContinuousParameter) Width() int { return 1 }

// Encode implements ParameterSpec.
func (p *ContinuousParameter) Encode(value any, dst []float64) error {
	v, err := toFloat(value)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", p.name, err)
	}

	if v < p.rng.Min || v > p.rng.Max {
		return fmt.Errorf(
			"%w: parameter %q value %v outside range [%v, %v]",
			ErrInvalidHyperparameter, p.name, v, p.rng.Min, p.rng.Max,
		)
	}

	dst[0] = (v - p.rng.Min) / (p.rng.Max - p.rng.Min)

	return nil
}

// DiscreteParameter is a numeric parameter restricted to an explicit set of
// values, encoded min-max normalized like a continuous parameter. Recorded
// values must match one of the allowed values (within a small absolute
// tolerance, so values that round-tripped through text survive).
type DiscreteParameter struct {
	name     string
	values   []float64
	min, max float64
}

const discreteTolerance = 1e-9

// NewDiscreteParameter creates a discrete parameter spec from its explicit
// allowed values (an "irregular" grid in campaign terms).
func NewDiscreteParameter(name string, values []float64) (*DiscreteParameter, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: parameter name must not be empty", ErrUnknownParameter)
	}

	if len(values) < 2 {
		return nil, fmt.Errorf(
			"%w: parameter %q needs at least two discrete values",
			ErrInvalidHyperparameter, name,
		)
	}

	min, max := values[0], values[0]

	for _, v := range values {
		if !isFinite(v) {
			return nil, fmt.Errorf("%w: parameter %q value %v is not finite", ErrInvalidHyperparameter, name, v)
		}

		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	if !(min < max) {
		return nil, fmt.Errorf(
			"%w: parameter %q needs at least two distinct values",
			ErrInvalidHyperparameter, name,
		)
	}

	return &DiscreteParameter{
		name:   name,
		values: append([]float64(nil), values...),
		min:    min,
		max:    max,
	}, nil
}

// NewRegularDiscreteParameter creates a discrete parameter from a range and a
// step, materializing the grid Min, Min+step, ..., up to and including Max.
func NewRegularDiscreteParameter[T constraints.Integer | constraints.Float](
	name string,
	rng ParameterRange[T],
	step T,
) (*DiscreteParameter, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: parameter %q step %v must be positive", ErrInvalidHyperparameter, name, step)
	}

	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}

	min, max, fstep := float64(rng.Min), float64(rng.Max), float64(step)

	var values []float64
	for v := min; v <= max+discreteTolerance; v += fstep {
		values = append(values, v)
	}

	return NewDiscreteParameter(name, values)
}

// Name implements ParameterSpec.
func (p *DiscreteParameter) Name() string { return p.name }

// Width implements ParameterSpec.
func (p *DiscreteParameter) Width() int { return 1 }

// Values returns the allowed values.
func (p *DiscreteParameter) Values() []float64 { return p.values }

// Encode implements ParameterSpec.
func (p *DiscreteParameter) Encode(value any, dst []float64) error {
	v, err := toFloat(value)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", p.name, err)
	}

	matched := false

	for _, allowed := range p.values {
		if math.Abs(v-allowed) <= discreteTolerance {
			v = allowed
			matched = true

			break
		}
	}

	if !matched {
		return fmt.Errorf(
			"%w: parameter %q value %v is not one of the allowed values",
			ErrInvalidHyperparameter, p.name, v,
		)
	}

	dst[0] = (v - p.min) / (p.max - p.min)

	return nil
}

// CategoricalParameter is a parameter taking one of a fixed set of labels,
// encoded one-hot: one feature column per label.
type CategoricalParameter struct {
	name   string
	values []string
	index  map[string]int
}

// NewCategoricalParameter creates a categorical parameter spec. Labels must
// be unique.
func NewCategoricalParameter(name string, values []string) (*CategoricalParameter, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: parameter name must not be empty", ErrUnknownParameter)
	}

	if len(values) < 2 {
		return nil, fmt.Errorf(
			"%w: parameter %q needs at least two categories",
			ErrInvalidHyperparameter, name,
		)
	}

	index := make(map[string]int, len(values))

	for i, v := range values {
		if _, dup := index[v]; dup {
			return nil, fmt.Errorf("%w: parameter %q has duplicate category %q", ErrInvalidHyperparameter, name, v)
		}

		index[v] = i
	}

	return &CategoricalParameter{
		name:   name,
		values: append([]string(nil), values...),
		index:  index,
	}, nil
}

// Name implements ParameterSpec.
func (p *CategoricalParameter) Name() string { return p.name }

// Width implements ParameterSpec: one column per category.
func (p *CategoricalParameter) Width() int { return len(p.values) }

// Encode implements ParameterSpec.
func (p *CategoricalParameter) Encode(value any, dst []float64) error {
	label, ok := value.(string)
	if !ok {
		return fmt.Errorf(
			"%w: parameter %q expects a string label, got %T",
			ErrInvalidHyperparameter, p.name, value,
		)
	}

	i, ok := p.index[label]
	if !ok {
		return fmt.Errorf("%w: parameter %q has no category %q", ErrInvalidHyperparameter, p.name, label)
	}

	for j := range dst {
		dst[j] = 0
	}

	dst[i] = 1

	return nil
}

// Encoder maps experiment records to feature vectors according to a fixed,
// ordered list of parameter specs. The ordering determines the feature
// column layout and is stable across calls, so encodings from different runs
// are comparable.
type Encoder struct {
	params []ParameterSpec
	width  int
}

// NewEncoder creates an encoder over the given parameter specs, in order.
// Parameter names must be unique.
func NewEncoder(params ...ParameterSpec) (*Encoder, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: encoder needs at least one parameter", ErrUnknownParameter)
	}

	seen := make(map[string]struct{}, len(params))
	width := 0

	for _, p := range params {
		if _, dup := seen[p.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrUnknownParameter, p.Name())
		}

		seen[p.Name()] = struct{}{}
		width += p.Width()
	}

	return &Encoder{params: params, width: width}, nil
}

// Width returns the feature dimension D of encoded vectors.
func (e *Encoder) Width() int { return e.width }

// Encode turns experiment records into an N×D feature batch. Every record
// must carry a value for every configured parameter; extra keys are ignored
// (they are typically target measurements, which are not features).
func (e *Encoder) Encode(records []map[string]any) (*mat.Dense, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no experiment records to encode", ErrDimensionMismatch)
	}

	out := mat.NewDense(len(records), e.width, nil)

	for i, record := range records {
		row := out.RawRowView(i)
		col := 0

		for _, p := range e.params {
			value, ok := record[p.Name()]
			if !ok {
				return nil, fmt.Errorf("%w: record %d is missing %q", ErrUnknownParameter, i, p.Name())
			}

			if err := p.Encode(value, row[col:col+p.Width()]); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}

			col += p.Width()
		}
	}

	return out, nil
}

// toFloat coerces the numeric types experiment records arrive with into
// float64.
func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: expected a numeric value, got %T", ErrInvalidHyperparameter, value)
	}
}
