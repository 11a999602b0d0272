package samplesize

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Formula computes a sample size for a design.
// Implementations must not call back into a Calculator for the same design.
type Formula func(*SampleParameters) (int, error)

var (
	registryMu sync.RWMutex
	registry   = map[Method]Formula{
		MethodSimpleRandom: simpleRandomFormula,
	}
)

// RegisterFormula binds a formula to a sampling method, replacing any
// previous binding. New methods are added here, never by branching on tags.
func RegisterFormula(method Method, f Formula) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[method] = f
}

// LookupFormula returns the formula registered for method.
func LookupFormula(method Method) (Formula, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[method]
	return f, ok
}

// Methods lists registered sampling methods in sorted order.
func Methods() []Method {
	registryMu.RLock()
	defer registryMu.RUnlock()

	methods := make([]Method, 0, len(registry))
	for m := range registry {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool {
		return methods[i] < methods[j]
	})
	return methods
}

// Calculator binds a sample design to the formula for its method.
//
// Control flow:
//
//	pop, _ := NewPopulationParameters(1000)
//	design, _ := NewSampleParameters(pop, MethodSimpleRandom, 0.95, 0.02)
//	calc, _ := NewCalculator(design)
//	n, _ := calc.SampleSize() // 706, cached on design
type Calculator struct {
	params   *SampleParameters
	formulas map[Method]Formula // per-calculator overrides
	logger   *slog.Logger
}

// CalculatorOption customizes a Calculator.
type CalculatorOption func(*Calculator)

// WithLogger sets the logger for computation records. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) CalculatorOption {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// WithFormula overrides the registered formula for one method on this
// calculator only.
func WithFormula(method Method, f Formula) CalculatorOption {
	return func(c *Calculator) {
		c.formulas[method] = f
	}
}

// NewCalculator creates a calculator for params.
func NewCalculator(params *SampleParameters, opts ...CalculatorOption) (*Calculator, error) {
	if params == nil {
		return nil, fmt.Errorf("sample parameters are required")
	}

	c := &Calculator{
		params:   params,
		formulas: make(map[Method]Formula),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c, nil
}

func (c *Calculator) formula() (Formula, error) {
	method := c.params.Method()
	if f, ok := c.formulas[method]; ok {
		return f, nil
	}
	if f, ok := LookupFormula(method); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
}

// Calculate computes the sample size, writes it onto the design and returns
// the same design. It always recomputes; use SampleSize for the cached path.
//
// On error the design's cached size is left exactly as it was.
func (c *Calculator) Calculate() (*SampleParameters, error) {
	f, err := c.formula()
	if err != nil {
		return nil, err
	}

	n, err := f(c.params)
	if err != nil {
		return nil, fmt.Errorf("calculate %s sample size: %w", c.params.Method(), err)
	}

	c.params.storeSampleSize(n)

	c.logger.Debug("sample size computed",
		"method", c.params.Method(),
		"population_size", c.params.Population().Size(),
		"variance", c.params.Population().Variance(),
		"confidence", c.params.ConfidenceLevel(),
		"z_score", c.params.ZScore(),
		"margin_of_error", c.params.MarginOfError(),
		"sample_size", n,
	)

	return c.params, nil
}

// SampleSize returns the cached sample size, computing it first if unset.
// Repeated calls return the cached value without recomputation.
func (c *Calculator) SampleSize() (int, error) {
	if n, ok := c.params.SampleSize(); ok {
		return n, nil
	}

	params, err := c.Calculate()
	if err != nil {
		return 0, err
	}
	n, _ := params.SampleSize()
	return n, nil
}

// SampleParameters returns the design enriched with its sample size,
// computing it first if unset.
func (c *Calculator) SampleParameters() (*SampleParameters, error) {
	if _, err := c.SampleSize(); err != nil {
		return nil, err
	}
	return c.params, nil
}
