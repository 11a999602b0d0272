package samplesize

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// designValidate checks constructor inputs against their struct tags.
var designValidate = validator.New()

// Method tags a sampling technique. Formulas are registered per tag.
type Method string

const (
	MethodSimpleRandom Method = "srs" // Simple random sampling
)

// ParseMethod maps a textual tag onto a registered Method.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := LookupFormula(m); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
	return m, nil
}

// PopulationParameters describes the target population.
// Values are immutable after construction.
type PopulationParameters struct {
	size     int
	variance float64
}

// PopulationOption customizes PopulationParameters at construction.
type PopulationOption func(*PopulationParameters)

// WithVariance sets an empirical population variance instead of the
// conservative DefaultVariance.
func WithVariance(variance float64) PopulationOption {
	return func(p *PopulationParameters) {
		p.variance = variance
	}
}

type populationInput struct {
	Size     int     `validate:"gt=0"`
	Variance float64 `validate:"gt=0"`
}

// NewPopulationParameters creates population parameters for size units.
//
// Variance defaults to DefaultVariance (0.25), the maximum for a Bernoulli
// proportion. Fails with ErrInvalidPopulationSize when size ≤ 0 and with
// ErrInvalidVariance when the variance is not positive.
//
// Example:
//
//	pop, err := NewPopulationParameters(1000, WithVariance(0.3))
func NewPopulationParameters(size int, opts ...PopulationOption) (*PopulationParameters, error) {
	p := &PopulationParameters{
		size:     size,
		variance: DefaultVariance,
	}
	for _, opt := range opts {
		opt(p)
	}

	err := checkStruct(populationInput{Size: p.size, Variance: p.variance}, map[string]error{
		"Size":     ErrInvalidPopulationSize,
		"Variance": ErrInvalidVariance,
	})
	if err != nil {
		return nil, err
	}
	if math.IsInf(p.variance, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidVariance, p.variance)
	}

	return p, nil
}

// Size returns the number of units in the population.
func (p *PopulationParameters) Size() int { return p.size }

// Variance returns the population variance.
func (p *PopulationParameters) Variance() float64 { return p.variance }

func (p *PopulationParameters) String() string {
	return fmt.Sprintf("PopulationParameters(size=%d, variance=%v)", p.size, p.variance)
}

// SampleParameters is a sample design over a population.
//
// Alpha and ZScore are derived from the confidence level once, at
// construction. The sample size starts unset and is written by a Calculator;
// the write is guarded so a shared instance tolerates concurrent readers.
type SampleParameters struct {
	population    *PopulationParameters
	method        Method
	confidence    float64
	marginOfError float64
	alpha         float64
	zScore        float64

	mu           sync.Mutex
	sampleSize   int
	sizeComputed bool
}

// SampleOption customizes SampleParameters at construction.
type SampleOption func(*SampleParameters)

// WithSampleSize seeds a known sample size. A calculator treats it as
// already computed.
func WithSampleSize(n int) SampleOption {
	return func(s *SampleParameters) {
		s.sampleSize = n
		s.sizeComputed = true
	}
}

type sampleInput struct {
	Confidence    float64 `validate:"gte=0,lte=1"`
	MarginOfError float64 `validate:"gt=0"`
}

// NewSampleParameters creates a sample design and derives alpha and the
// z-score from confidence.
//
// Validation happens here, not at first use:
//   - population must be non-nil (ErrNilPopulation)
//   - 0 ≤ confidence ≤ 1, both bounds inclusive (ErrConfidenceRange)
//   - marginOfError > 0 and finite (ErrInvalidMarginOfError)
//
// The method is not checked against the formula registry; an unknown tag
// surfaces as ErrUnsupportedMethod when a Calculator runs.
//
// Example:
//
//	pop, _ := NewPopulationParameters(100)
//	design, _ := NewSampleParameters(pop, MethodSimpleRandom, 0.95, 0.05)
//	design.ZScore() // 1.96
//	design.Alpha()  // 0.05
func NewSampleParameters(
	population *PopulationParameters,
	method Method,
	confidence float64,
	marginOfError float64,
	opts ...SampleOption,
) (*SampleParameters, error) {
	if population == nil {
		return nil, ErrNilPopulation
	}

	err := checkStruct(sampleInput{Confidence: confidence, MarginOfError: marginOfError}, map[string]error{
		"Confidence":    ErrConfidenceRange,
		"MarginOfError": ErrInvalidMarginOfError,
	})
	if err != nil {
		return nil, err
	}
	if math.IsInf(marginOfError, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMarginOfError, marginOfError)
	}

	s := &SampleParameters{
		population:    population,
		method:        method,
		confidence:    confidence,
		marginOfError: marginOfError,
		alpha:         Alpha(confidence),
		zScore:        ZScore(confidence),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.sizeComputed && (s.sampleSize < 0 || s.sampleSize > population.size) {
		return nil, fmt.Errorf("%w: got %d for population of %d",
			ErrInvalidSampleSize, s.sampleSize, population.size)
	}

	return s, nil
}

// Population returns the population the design samples from.
func (s *SampleParameters) Population() *PopulationParameters { return s.population }

// Method returns the sampling method tag.
func (s *SampleParameters) Method() Method { return s.method }

// ConfidenceLevel returns the confidence level in [0, 1].
func (s *SampleParameters) ConfidenceLevel() float64 { return s.confidence }

// MarginOfError returns the maximum acceptable half-width e.
func (s *SampleParameters) MarginOfError() float64 { return s.marginOfError }

// Alpha returns 1 - confidence, rounded to two decimals at construction.
func (s *SampleParameters) Alpha() float64 { return s.alpha }

// ZScore returns Φ⁻¹(1 - α/2) for the rounded alpha, two decimals.
func (s *SampleParameters) ZScore() float64 { return s.zScore }

// SampleSize returns the cached sample size and whether it has been computed.
// A computed size of zero is distinguishable from an unset one.
func (s *SampleParameters) SampleSize() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleSize, s.sizeComputed
}

// storeSampleSize records a computed size.
func (s *SampleParameters) storeSampleSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sampleSize = n
	s.sizeComputed = true
}

func (s *SampleParameters) String() string {
	size := "<nil>"
	if n, ok := s.SampleSize(); ok {
		size = fmt.Sprint(n)
	}
	return fmt.Sprintf(
		"SampleParameters(population=%s, method=%s, confidence=%v, margin_of_error=%v, z_score=%v, alpha=%v, sample_size=%s)",
		s.population, s.method, s.confidence, s.marginOfError, s.zScore, s.alpha, size,
	)
}

// checkStruct validates v and maps the first failing field onto its sentinel.
func checkStruct(v any, sentinels map[string]error) error {
	err := designValidate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	if sentinel, ok := sentinels[fe.Field()]; ok {
		return fmt.Errorf("%w: got %v", sentinel, fe.Value())
	}
	return err
}
