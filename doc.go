// Package samplesize computes required sample sizes for simple random
// sampling (SRS) surveys.
//
// # Overview
//
// Given a population of N units, a desired confidence level and a margin of
// error, samplesize answers: "how many units must be surveyed?" It follows
// Lohr's finite population corrected formula:
//
//	n₀ = z² · S² / e²
//	n  = ⌈n₀ / (1 + n₀/N)⌉
//
// Where:
//   - z: two-tailed standard normal critical value, Φ⁻¹(1 - α/2)
//   - α: significance level, 1 - confidence
//   - S²: population variance (p(1-p) for a proportion, 0.25 when unknown)
//   - e: margin of error
//   - N: population size
//
// # Design Path
//
// Build the population, then the sample design, then calculate:
//
//	pop, err := samplesize.NewPopulationParameters(1000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	design, err := samplesize.NewSampleParameters(pop, samplesize.MethodSimpleRandom, 0.95, 0.02)
//	if err != nil {
//	    log.Fatal(err) // confidence outside [0, 1], margin ≤ 0, ...
//	}
//
//	calc, _ := samplesize.NewCalculator(design)
//	n, err := calc.SampleSize() // 706, cached on design
//
// The calculator dispatches on the design's Method through a registry.
// Register a formula to support another method:
//
//	samplesize.RegisterFormula("census", func(p *samplesize.SampleParameters) (int, error) {
//	    return p.Population().Size(), nil
//	})
//
// # Facade Path
//
// Size directly from scalars:
//
//	srs, err := samplesize.NewSimpleRandomSample(100, 0.95, 0.02)
//	srs.SampleSize() // 97
//	srs.Metadata()   // SampleMetadata(confidence=0.95, margin_of_error=0.02, z_score=1.96, ...)
//
// # Reference Values
//
//	conf   z      N=1000, e=0.02
//	0.90   1.64   628
//	0.95   1.96   706
//	0.99   2.58   807
//
// # Testing
//
// Use Sweep and the assertions to validate sizing properties:
//
//	func TestSurveyPlan(t *testing.T) {
//	    results, _ := samplesize.Sweep(samplesize.DefaultSweepConfig())
//	    samplesize.AssertSizing(t, results)
//	}
//
// # See Also
//
//   - Sharon L. Lohr, Sampling: Design and Analysis, 2nd ed. (2010)
//   - examples/ - Working code samples
package samplesize
