package samplesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBernoulliVariance(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{0.5, 0.25},
		{0.9, 0.09},
		{0.3, 0.21},
		{0.0, 0.0},
		{1.0, 0.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, BernoulliVariance(tt.p), 1e-12, "p=%v", tt.p)
	}

	// Worst case is exact, not approximate
	assert.Equal(t, DefaultVariance, BernoulliVariance(DefaultSuccessProbability))
}

func TestBernoulliVariance_MaximalAtHalf(t *testing.T) {
	peak := BernoulliVariance(0.5)
	for p := 0.0; p <= 1.0; p += 0.01 {
		if v := BernoulliVariance(p); v > peak {
			t.Errorf("p=%.2f gives %.4f above the p=0.5 maximum %.4f", p, v, peak)
		}
	}
}
