package samplesize

import (
	"fmt"
	"math"
)

// InfinitePopulationSize returns the sample size needed when the population
// is unbounded:
//
//	n₀ = z² · S² / e²
//
// Where:
//   - z: critical value for the confidence level
//   - S²: population variance
//   - e: margin of error
func InfinitePopulationSize(z, variance, marginOfError float64) float64 {
	return (z * z * variance) / (marginOfError * marginOfError)
}

// FinitePopulationCorrection shrinks n₀ for a population of N units:
//
//	n = n₀ / (1 + n₀/N)
//
// The result never exceeds n₀ and approaches N as n₀ grows.
// An infinite n₀ (confidence of 1) corrects to N, a full census.
func FinitePopulationCorrection(n0 float64, populationSize int) float64 {
	N := float64(populationSize)
	if math.IsInf(n0, 1) {
		return N
	}
	return n0 / (1 + (n0 / N))
}

// SimpleRandomSampleSize computes the minimum sample size for simple random
// sampling per Lohr (Sampling: Design and Analysis, 2nd ed., 2010):
//
//	n₀ = z² · S² / e²
//	n  = ⌈n₀ / (1 + n₀/N)⌉
//
// Rounding is always up so the requested precision is never under-covered.
// The result is clamped to [0, N] to absorb ceiling artifacts when n₀ is
// extremely large relative to N.
//
// Example:
//
//	n, _ := SimpleRandomSampleSize(1.96, 0.25, 0.02, 1000)
//	// n = 706
func SimpleRandomSampleSize(z, variance, marginOfError float64, populationSize int) (int, error) {
	switch {
	case populationSize <= 0:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPopulationSize, populationSize)
	case !(variance > 0):
		return 0, fmt.Errorf("%w: got %v", ErrInvalidVariance, variance)
	case !(marginOfError > 0) || math.IsInf(marginOfError, 1):
		return 0, fmt.Errorf("%w: got %v", ErrInvalidMarginOfError, marginOfError)
	case math.IsNaN(z) || z < 0:
		return 0, fmt.Errorf("invalid z-score: %v", z)
	}

	n0 := InfinitePopulationSize(z, variance, marginOfError)
	n := math.Ceil(FinitePopulationCorrection(n0, populationSize))

	if n > float64(populationSize) {
		return populationSize, nil
	}
	return int(n), nil
}

// simpleRandomFormula binds SimpleRandomSampleSize to the registry signature.
func simpleRandomFormula(p *SampleParameters) (int, error) {
	return SimpleRandomSampleSize(
		p.ZScore(),
		p.Population().Variance(),
		p.MarginOfError(),
		p.Population().Size(),
	)
}
