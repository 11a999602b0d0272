package samplesize

import (
	"fmt"
	"log/slog"
)

// SweepResult is one cell of a sensitivity sweep.
type SweepResult struct {
	PopulationSize  int     // N
	ConfidenceLevel float64 // 1 - α
	MarginOfError   float64 // e
	ZScore          float64 // z for the confidence level
	InfiniteSize    float64 // n₀ before finite population correction
	SampleSize      int     // n after correction, rounded up
}

// SamplingFraction returns n/N, the share of the population that is sampled.
func (r SweepResult) SamplingFraction() float64 {
	return float64(r.SampleSize) / float64(r.PopulationSize)
}

// SweepConfig controls which designs a sweep evaluates.
type SweepConfig struct {
	PopulationSizes  []int     // Population sizes to evaluate
	ConfidenceLevels []float64 // Confidence levels to evaluate
	MarginsOfError   []float64 // Margins of error to evaluate
	Variance         float64   // Population variance (0 = DefaultVariance)
	Method           Method    // Sampling method ("" = MethodSimpleRandom)
	Logger           *slog.Logger
}

// DefaultSweepConfig returns the usual survey planning grid.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		PopulationSizes:  []int{100, 500, 1000, 5000, 10000, 100000},
		ConfidenceLevels: []float64{0.90, 0.95, 0.99},
		MarginsOfError:   []float64{0.01, 0.02, 0.03, 0.05},
		Variance:         DefaultVariance,
		Method:           MethodSimpleRandom,
	}
}

// Sweep sizes every combination of population size, confidence level and
// margin of error in cfg.
//
// Rows are ordered by population size, then confidence level, then margin
// of error, following the order given in cfg. The first invalid cell aborts
// the sweep with an error naming it.
//
// Use it to see how sensitive a survey budget is to each input:
//
//	results, err := Sweep(DefaultSweepConfig())
//	for _, r := range results {
//	    fmt.Printf("N=%d conf=%.2f e=%.2f → n=%d\n",
//	        r.PopulationSize, r.ConfidenceLevel, r.MarginOfError, r.SampleSize)
//	}
func Sweep(cfg SweepConfig) ([]SweepResult, error) {
	if cfg.Variance == 0 {
		cfg.Variance = DefaultVariance
	}
	if cfg.Method == "" {
		cfg.Method = MethodSimpleRandom
	}

	results := make([]SweepResult, 0,
		len(cfg.PopulationSizes)*len(cfg.ConfidenceLevels)*len(cfg.MarginsOfError))

	for _, size := range cfg.PopulationSizes {
		pop, err := NewPopulationParameters(size, WithVariance(cfg.Variance))
		if err != nil {
			return nil, fmt.Errorf("failed at N=%d: %w", size, err)
		}

		for _, conf := range cfg.ConfidenceLevels {
			for _, margin := range cfg.MarginsOfError {
				result, err := sweepCell(pop, conf, margin, cfg)
				if err != nil {
					return nil, fmt.Errorf("failed at N=%d conf=%v e=%v: %w", size, conf, margin, err)
				}
				results = append(results, result)
			}
		}
	}

	return results, nil
}

// sweepCell sizes one design through the calculator.
func sweepCell(pop *PopulationParameters, conf, margin float64, cfg SweepConfig) (SweepResult, error) {
	design, err := NewSampleParameters(pop, cfg.Method, conf, margin)
	if err != nil {
		return SweepResult{}, err
	}

	calc, err := NewCalculator(design, WithLogger(cfg.Logger))
	if err != nil {
		return SweepResult{}, err
	}
	n, err := calc.SampleSize()
	if err != nil {
		return SweepResult{}, err
	}

	return SweepResult{
		PopulationSize:  pop.Size(),
		ConfidenceLevel: conf,
		MarginOfError:   margin,
		ZScore:          design.ZScore(),
		InfiniteSize:    InfinitePopulationSize(design.ZScore(), pop.Variance(), margin),
		SampleSize:      n,
	}, nil
}
