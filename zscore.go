package samplesize

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat/distuv"
)

// scorePrecision is the number of decimal places kept for alpha and z-scores.
const scorePrecision = 2

// Alpha returns the significance level for a confidence level:
//
//	α = 1 - confidence
//
// rounded to two decimal places, so 0.95 yields exactly 0.05 instead of
// 0.050000000000000044.
func Alpha(confidence float64) float64 {
	return scalar.Round(1-confidence, scorePrecision)
}

// ZScore returns the two-tailed standard normal critical value for a
// confidence level, computed from the rounded Alpha:
//
//	z = Φ⁻¹(1 - α/2)
//
// Reference values:
//   - 0.90 → 1.64 (1.6449 rounded)
//   - 0.95 → 1.96
//   - 0.99 → 2.58 (2.5758 rounded)
//
// Rounding is half away from zero at two decimals. A confidence of 1 has no
// finite critical value and yields +Inf; a confidence of 0 yields 0.
// Confidences outside [0, 1] (or NaN) yield NaN.
//
// Because alpha is rounded first, confidences above 0.995 share alpha 0
// and yield +Inf. Use CriticalValue for the exact quantile.
func ZScore(confidence float64) float64 {
	if !(confidence >= 0 && confidence <= 1) {
		return math.NaN()
	}
	return criticalValue(Alpha(confidence))
}

// CriticalValue returns the two-tailed critical value for the unrounded
// significance level 1 - confidence, rounded to two decimals:
//
//	0.999 → 3.29
//	0.955 → 2.00
//
// Edge values match ZScore: 1 → +Inf, 0 → 0, out of range → NaN.
func CriticalValue(confidence float64) float64 {
	if !(confidence >= 0 && confidence <= 1) {
		return math.NaN()
	}
	return criticalValue(1 - confidence)
}

// criticalValue evaluates Φ⁻¹(1 - α/2) for α in [0, 1].
func criticalValue(alpha float64) float64 {
	if !(alpha >= 0 && alpha <= 1) {
		return math.NaN()
	}

	probability := 1 - alpha/2
	if probability >= 1 {
		return math.Inf(1)
	}
	return scalar.Round(distuv.UnitNormal.Quantile(probability), scorePrecision)
}
