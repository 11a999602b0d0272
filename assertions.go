package samplesize

import (
	"fmt"
	"math"
	"sort"
	"testing"
)

// AssertionConfig contains thresholds for sizing properties.
type AssertionConfig struct {
	// Allowed absolute deviation from an expected sample size
	Tolerance int

	// Upper bound on n/N (1.0 = never sample more than the population)
	MaxSamplingFraction float64
}

// DefaultAssertionConfig returns exact-match thresholds.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		Tolerance:           0,
		MaxSamplingFraction: 1.0,
	}
}

// AssertSampleSize verifies a sizing result against an expected count.
func AssertSampleSize(t *testing.T, result SweepResult, want int, cfg AssertionConfig) {
	t.Helper()

	diff := result.SampleSize - want
	if diff < 0 {
		diff = -diff
	}
	if diff > cfg.Tolerance {
		t.Errorf("Sample size mismatch for N=%d conf=%.2f e=%v: got %d, want %d (tolerance %d)",
			result.PopulationSize, result.ConfidenceLevel, result.MarginOfError,
			result.SampleSize, want, cfg.Tolerance)
	}
}

// AssertBoundedByInfinite verifies the finite population correction only
// ever shrinks the estimate:
//
//	n ≤ ⌈n₀⌉ and n ≤ N · MaxSamplingFraction
func AssertBoundedByInfinite(t *testing.T, results []SweepResult, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for _, r := range results {
		if float64(r.SampleSize) > math.Ceil(r.InfiniteSize) {
			failures = append(failures, fmt.Sprintf(
				"  N=%d conf=%.2f e=%v: n=%d exceeds n₀=%.2f",
				r.PopulationSize, r.ConfidenceLevel, r.MarginOfError, r.SampleSize, r.InfiniteSize))
		}
		if r.SamplingFraction() > cfg.MaxSamplingFraction {
			failures = append(failures, fmt.Sprintf(
				"  N=%d conf=%.2f e=%v: n/N=%.4f exceeds %.4f",
				r.PopulationSize, r.ConfidenceLevel, r.MarginOfError, r.SamplingFraction(), cfg.MaxSamplingFraction))
		}
	}

	if len(failures) > 0 {
		t.Errorf("Sample size not bounded:\n%s", failures)
	}
}

// AssertMonotonicInPopulation verifies n never decreases as N grows while
// confidence and margin of error stay fixed.
func AssertMonotonicInPopulation(t *testing.T, results []SweepResult) {
	t.Helper()

	groups := groupResults(results, func(r SweepResult) string {
		return fmt.Sprintf("conf=%.4f e=%v", r.ConfidenceLevel, r.MarginOfError)
	})

	var failures []string
	for key, rows := range groups {
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].PopulationSize < rows[j].PopulationSize
		})
		for i := 1; i < len(rows); i++ {
			if rows[i].SampleSize < rows[i-1].SampleSize {
				failures = append(failures, fmt.Sprintf(
					"  %s: N=%d→%d gives n=%d→%d",
					key, rows[i-1].PopulationSize, rows[i].PopulationSize,
					rows[i-1].SampleSize, rows[i].SampleSize))
			}
		}
	}

	if len(failures) > 0 {
		sort.Strings(failures)
		t.Errorf("Sample size decreased with population size:\n%s", failures)
	}
}

// AssertMonotonicInMargin verifies a smaller margin of error never yields a
// smaller sample while N and confidence stay fixed.
func AssertMonotonicInMargin(t *testing.T, results []SweepResult) {
	t.Helper()

	groups := groupResults(results, func(r SweepResult) string {
		return fmt.Sprintf("N=%d conf=%.4f", r.PopulationSize, r.ConfidenceLevel)
	})

	var failures []string
	for key, rows := range groups {
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].MarginOfError < rows[j].MarginOfError
		})
		for i := 1; i < len(rows); i++ {
			if rows[i].SampleSize > rows[i-1].SampleSize {
				failures = append(failures, fmt.Sprintf(
					"  %s: e=%v→%v gives n=%d→%d",
					key, rows[i-1].MarginOfError, rows[i].MarginOfError,
					rows[i-1].SampleSize, rows[i].SampleSize))
			}
		}
	}

	if len(failures) > 0 {
		sort.Strings(failures)
		t.Errorf("Sample size grew with margin of error:\n%s", failures)
	}
}

// AssertSizing runs all sizing property assertions with default config.
func AssertSizing(t *testing.T, results []SweepResult) {
	t.Helper()

	cfg := DefaultAssertionConfig()

	t.Run("BoundedByInfinite", func(t *testing.T) {
		AssertBoundedByInfinite(t, results, cfg)
	})

	t.Run("MonotonicInPopulation", func(t *testing.T) {
		AssertMonotonicInPopulation(t, results)
	})

	t.Run("MonotonicInMargin", func(t *testing.T) {
		AssertMonotonicInMargin(t, results)
	})
}

// PrintAnalysis outputs a sizing table to the test log.
func PrintAnalysis(t *testing.T, results []SweepResult) {
	t.Helper()

	t.Logf("\n=== Sample Size Analysis ===")
	t.Logf("  N        conf   e       z      n₀          n        n/N")
	t.Logf("  -------  -----  ------  -----  ----------  -------  ------")
	for _, r := range results {
		t.Logf("  %-7d  %.2f   %-6v  %.2f   %10.2f  %7d  %5.1f%%",
			r.PopulationSize, r.ConfidenceLevel, r.MarginOfError, r.ZScore,
			r.InfiniteSize, r.SampleSize, r.SamplingFraction()*100)
	}
}

// groupResults buckets results by key, copying so callers can sort freely.
func groupResults(results []SweepResult, key func(SweepResult) string) map[string][]SweepResult {
	groups := make(map[string][]SweepResult)
	for _, r := range results {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}
