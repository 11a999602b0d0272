package samplesize

import (
	"fmt"
	"math"
	"sync"
)

// SampleMetadata is an immutable snapshot of a sizing computation.
type SampleMetadata struct {
	ConfidenceLevel    float64 `json:"confidence" yaml:"confidence"`
	MarginOfError      float64 `json:"margin_of_error" yaml:"margin_of_error"`
	ZScore             float64 `json:"z_score" yaml:"z_score"`
	PopulationVariance float64 `json:"population_variance" yaml:"population_variance"`
	PopulationSize     int     `json:"population_size" yaml:"population_size"`
	SampleSize         int     `json:"sample_size" yaml:"sample_size"`
}

func (m SampleMetadata) String() string {
	return fmt.Sprintf(
		"SampleMetadata(confidence=%v, margin_of_error=%v, z_score=%v, population_variance=%v, population_size=%d, sample_size=%d)",
		m.ConfidenceLevel, m.MarginOfError, m.ZScore, m.PopulationVariance, m.PopulationSize, m.SampleSize,
	)
}

// ParseConfidence accepts a confidence level of dynamic type.
//
// Only float64 and float32 are accepted; any other type fails with
// ErrConfidenceType naming the received type. Values outside [0, 1] (or NaN)
// fail with ErrConfidenceRange.
func ParseConfidence(v any) (float64, error) {
	var confidence float64
	switch c := v.(type) {
	case float64:
		confidence = c
	case float32:
		confidence = float64(c)
	default:
		return 0, fmt.Errorf("%w: %T", ErrConfidenceType, v)
	}

	if !(confidence >= 0 && confidence <= 1) {
		return 0, fmt.Errorf("%w: got %v", ErrConfidenceRange, confidence)
	}
	return confidence, nil
}

// SimpleRandomSample sizes a simple random sample directly from scalar
// inputs, without building design objects first.
//
// Derived values (z-score, population variance, sample size, metadata) are
// computed on first access and cached. The caches are guarded by a mutex.
//
// Example:
//
//	srs, _ := NewSimpleRandomSample(100, 0.95, 0.02)
//	srs.ZScore()             // 1.96
//	srs.PopulationVariance() // 0.25
//	srs.SampleSize()         // 97
type SimpleRandomSample struct {
	populationSize int
	confidence     float64
	marginOfError  float64

	mu               sync.Mutex
	zScore           float64
	zComputed        bool
	variance         float64
	varianceSet      bool
	sampleSize       int
	sizeComputed     bool
	metadata         SampleMetadata
	metadataComputed bool
}

// SRSOption customizes a SimpleRandomSample.
type SRSOption func(*SimpleRandomSample)

// WithPopulationVariance supplies an empirical population variance.
// Without it the Bernoulli worst case at p = 0.5 is used.
func WithPopulationVariance(variance float64) SRSOption {
	return func(s *SimpleRandomSample) {
		s.variance = variance
		s.varianceSet = true
	}
}

// NewSimpleRandomSample validates the inputs and returns a lazy sizing object.
//
// confidence is checked with ParseConfidence, so passing an int, a slice or
// any other non-float fails with ErrConfidenceType, and a float outside
// [0, 1] fails with ErrConfidenceRange.
func NewSimpleRandomSample(populationSize int, confidence any, marginOfError float64, opts ...SRSOption) (*SimpleRandomSample, error) {
	conf, err := ParseConfidence(confidence)
	if err != nil {
		return nil, err
	}
	if populationSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPopulationSize, populationSize)
	}
	if !(marginOfError > 0) || math.IsInf(marginOfError, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMarginOfError, marginOfError)
	}

	s := &SimpleRandomSample{
		populationSize: populationSize,
		confidence:     conf,
		marginOfError:  marginOfError,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.varianceSet && (!(s.variance > 0) || math.IsInf(s.variance, 1)) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidVariance, s.variance)
	}

	return s, nil
}

// PopulationSize returns N.
func (s *SimpleRandomSample) PopulationSize() int { return s.populationSize }

// ConfidenceLevel returns the validated confidence level.
func (s *SimpleRandomSample) ConfidenceLevel() float64 { return s.confidence }

// MarginOfError returns e.
func (s *SimpleRandomSample) MarginOfError() float64 { return s.marginOfError }

// Alpha returns 1 - confidence rounded to two decimals, for display.
// The z-score does not depend on this rounding.
func (s *SimpleRandomSample) Alpha() float64 { return Alpha(s.confidence) }

// ZScore returns the critical value for the exact significance level
// 1 - confidence (see CriticalValue), so 0.999 yields 3.29.
func (s *SimpleRandomSample) ZScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zScoreLocked()
}

func (s *SimpleRandomSample) zScoreLocked() float64 {
	if !s.zComputed {
		s.zScore = CriticalValue(s.confidence)
		s.zComputed = true
	}
	return s.zScore
}

// PopulationVariance returns the supplied variance, or the Bernoulli worst
// case (0.25) when none was given.
func (s *SimpleRandomSample) PopulationVariance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.varianceLocked()
}

func (s *SimpleRandomSample) varianceLocked() float64 {
	if !s.varianceSet {
		s.variance = BernoulliVariance(DefaultSuccessProbability)
		s.varianceSet = true
	}
	return s.variance
}

// CalculatePopulationVariance replaces the population variance with p(1-p)
// and drops any cached sample size and metadata derived from the old value.
//
// p must lie in [0, 1] (ErrInvalidProbability) and must yield a positive
// variance, which excludes 0 and 1 (ErrInvalidVariance). On error nothing
// cached changes.
func (s *SimpleRandomSample) CalculatePopulationVariance(p float64) (float64, error) {
	if !(p >= 0 && p <= 1) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidProbability, p)
	}
	variance := BernoulliVariance(p)
	if !(variance > 0) {
		return 0, fmt.Errorf("%w: p=%v gives %v", ErrInvalidVariance, p, variance)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.variance = variance
	s.varianceSet = true
	s.sizeComputed = false
	s.metadataComputed = false

	return variance, nil
}

// SampleSize returns the required sample size, computing it on first access.
func (s *SimpleRandomSample) SampleSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleSizeLocked()
}

// CalculateSampleSize recomputes the sample size, refreshing the cache.
func (s *SimpleRandomSample) CalculateSampleSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizeComputed = false
	s.metadataComputed = false
	return s.sampleSizeLocked()
}

func (s *SimpleRandomSample) sampleSizeLocked() int {
	if !s.sizeComputed {
		n, _ := SimpleRandomSampleSize(s.zScoreLocked(), s.varianceLocked(), s.marginOfError, s.populationSize)
		s.sampleSize = n
		s.sizeComputed = true
	}
	return s.sampleSize
}

// Metadata returns a snapshot of all inputs and derived values.
func (s *SimpleRandomSample) Metadata() SampleMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.metadataComputed {
		s.metadata = SampleMetadata{
			ConfidenceLevel:    s.confidence,
			MarginOfError:      s.marginOfError,
			ZScore:             s.zScoreLocked(),
			PopulationVariance: s.varianceLocked(),
			PopulationSize:     s.populationSize,
			SampleSize:         s.sampleSizeLocked(),
		}
		s.metadataComputed = true
	}
	return s.metadata
}

// Design converts the facade into design objects carrying the computed
// sample size, for callers that continue with a Calculator.
func (s *SimpleRandomSample) Design() (*SampleParameters, error) {
	meta := s.Metadata()

	pop, err := NewPopulationParameters(meta.PopulationSize, WithVariance(meta.PopulationVariance))
	if err != nil {
		return nil, err
	}
	return NewSampleParameters(pop, MethodSimpleRandom, meta.ConfidenceLevel, meta.MarginOfError,
		WithSampleSize(meta.SampleSize))
}
