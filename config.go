package samplesize

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config describes a sizing request, typically decoded from YAML:
//
//	population_size: 1000
//	confidence: 0.95
//	margin_of_error: 0.02
//	population_variance: 0.3 # optional
//	method: srs              # optional
//
// Confidence is held untyped so that a non-float document value (an
// integer, a list) is reported as ErrConfidenceType rather than being
// coerced.
type Config struct {
	PopulationSize     int      `json:"population_size" yaml:"population_size" validate:"gt=0"`
	PopulationVariance *float64 `json:"population_variance,omitempty" yaml:"population_variance,omitempty" validate:"omitempty,gt=0"`
	Confidence         any      `json:"confidence" yaml:"confidence"`
	MarginOfError      float64  `json:"margin_of_error" yaml:"margin_of_error" validate:"gt=0"`
	Method             Method   `json:"method" yaml:"method"`
}

// DefaultConfig returns conventional survey settings.
// PopulationSize has no sensible default and must be set.
func DefaultConfig() Config {
	return Config{
		Confidence:    0.95, // 95% confidence
		MarginOfError: 0.05, // ±5 percentage points
		Method:        MethodSimpleRandom,
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field, reporting the first failure with the same
// sentinel errors the constructors use.
func (c Config) Validate() error {
	if _, err := ParseConfidence(c.Confidence); err != nil {
		return err
	}

	err := checkStruct(c, map[string]error{
		"PopulationSize":     ErrInvalidPopulationSize,
		"PopulationVariance": ErrInvalidVariance,
		"MarginOfError":      ErrInvalidMarginOfError,
	})
	if err != nil {
		return err
	}

	if _, ok := LookupFormula(c.Method); !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, c.Method)
	}
	return nil
}

// SampleParameters builds the design objects described by the config.
func (c Config) SampleParameters() (*SampleParameters, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	confidence, _ := ParseConfidence(c.Confidence)

	var opts []PopulationOption
	if c.PopulationVariance != nil {
		opts = append(opts, WithVariance(*c.PopulationVariance))
	}
	pop, err := NewPopulationParameters(c.PopulationSize, opts...)
	if err != nil {
		return nil, err
	}

	return NewSampleParameters(pop, c.Method, confidence, c.MarginOfError)
}

// SimpleRandomSample builds the facade described by the config.
// The method field is ignored; the facade always sizes simple random samples.
func (c Config) SimpleRandomSample() (*SimpleRandomSample, error) {
	var opts []SRSOption
	if c.PopulationVariance != nil {
		opts = append(opts, WithPopulationVariance(*c.PopulationVariance))
	}
	return NewSimpleRandomSample(c.PopulationSize, c.Confidence, c.MarginOfError, opts...)
}
