package samplesize

const (
	// DefaultSuccessProbability is the p that maximizes Bernoulli variance.
	DefaultSuccessProbability = 0.5

	// DefaultVariance is p(1-p) at p = 0.5, the conservative worst case used
	// when no empirical variance is known.
	DefaultVariance = 0.25
)

// BernoulliVariance estimates population variance for a proportion:
//
//	S² = p(1 - p)
//
// The result lies in [0, 0.25] for p in [0, 1] and peaks at p = 0.5.
// Examples: 0.5 → 0.25, 0.9 → 0.09, 0.3 → 0.21.
func BernoulliVariance(p float64) float64 {
	return p * (1 - p)
}
