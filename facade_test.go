package samplesize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleRandomSample_WithoutVariance(t *testing.T) {
	tests := []struct {
		N      int
		conf   float64
		margin float64
		want   int
	}{
		{100, 0.95, 0.02, 97},
		{1000, 0.95, 0.02, 706},
		{1000, 0.99, 0.02, 807},
		{1000, 0.9, 0.02, 628},
		{1000, 0.95, 0.03, 517},
		{1000, 0.95, 0.05, 278},
	}

	for _, tt := range tests {
		srs, err := NewSimpleRandomSample(tt.N, tt.conf, tt.margin)
		require.NoError(t, err)

		assert.Equal(t, tt.want, srs.CalculateSampleSize(),
			"N=%d conf=%.2f e=%v", tt.N, tt.conf, tt.margin)
	}
}

func TestSimpleRandomSample_WithVariance(t *testing.T) {
	tests := []struct {
		N        int
		conf     float64
		margin   float64
		variance float64
		want     int
	}{
		{100, 0.95, 0.02, 0.3, 97},
		{1000, 0.90, 0.02, 0.4, 729},
		{1000, 0.99, 0.02, 0.5, 893},
	}

	for _, tt := range tests {
		srs, err := NewSimpleRandomSample(tt.N, tt.conf, tt.margin, WithPopulationVariance(tt.variance))
		require.NoError(t, err)

		assert.Equal(t, tt.want, srs.SampleSize())
		assert.Equal(t, tt.variance, srs.PopulationVariance())
	}
}

func TestSimpleRandomSample_CalculatePopulationVariance(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{0.5, 0.25},
		{0.9, 0.09},
		{0.3, 0.21},
	}

	for _, tt := range tests {
		srs, err := NewSimpleRandomSample(1000, 0.95, 0.02)
		require.NoError(t, err)

		got, err := srs.CalculatePopulationVariance(tt.p)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12)
		assert.InDelta(t, tt.want, srs.PopulationVariance(), 1e-12)
	}
}

func TestSimpleRandomSample_VarianceChangeInvalidatesSize(t *testing.T) {
	srs, err := NewSimpleRandomSample(1000, 0.95, 0.02)
	require.NoError(t, err)

	before := srs.SampleSize()
	require.Equal(t, 706, before)

	_, err = srs.CalculatePopulationVariance(0.9)
	require.NoError(t, err)

	after := srs.SampleSize()
	assert.Less(t, after, before, "a smaller variance needs a smaller sample")
	assert.Equal(t, after, srs.Metadata().SampleSize)

	t.Logf("  p=0.5 → n=%d, p=0.9 → n=%d", before, after)
}

func TestSimpleRandomSample_CalculatePopulationVarianceRejects(t *testing.T) {
	srs, err := NewSimpleRandomSample(1000, 0.95, 0.02)
	require.NoError(t, err)
	n := srs.SampleSize()

	for _, p := range []float64{-0.1, 1.5} {
		_, err := srs.CalculatePopulationVariance(p)
		assert.ErrorIs(t, err, ErrInvalidProbability, "p=%v", p)
	}
	for _, p := range []float64{0, 1} {
		_, err := srs.CalculatePopulationVariance(p)
		assert.ErrorIs(t, err, ErrInvalidVariance, "p=%v", p)
	}

	assert.Equal(t, 0.25, srs.PopulationVariance())
	assert.Equal(t, n, srs.SampleSize())
}

func TestSimpleRandomSample_LazyProperties(t *testing.T) {
	srs, err := NewSimpleRandomSample(100, 0.95, 0.02)
	require.NoError(t, err)

	assert.Equal(t, 100, srs.PopulationSize())
	assert.Equal(t, 0.95, srs.ConfidenceLevel())
	assert.Equal(t, 0.02, srs.MarginOfError())
	assert.Equal(t, 0.05, srs.Alpha())
	assert.Equal(t, 1.96, srs.ZScore())
	assert.Equal(t, 0.25, srs.PopulationVariance())
	assert.Equal(t, 97, srs.SampleSize())
	assert.Equal(t, srs.SampleSize(), srs.CalculateSampleSize())
}

func TestSimpleRandomSample_Metadata(t *testing.T) {
	srs, err := NewSimpleRandomSample(100, 0.95, 0.02)
	require.NoError(t, err)

	want := SampleMetadata{
		ConfidenceLevel:    0.95,
		MarginOfError:      0.02,
		ZScore:             1.96,
		PopulationVariance: 0.25,
		PopulationSize:     100,
		SampleSize:         97,
	}

	got := srs.Metadata()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Metadata mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t,
		"SampleMetadata(confidence=0.95, margin_of_error=0.02, z_score=1.96, population_variance=0.25, population_size=100, sample_size=97)",
		got.String())

	// Snapshot is a value; mutating the copy does not touch the cache
	got.SampleSize = 1
	assert.Equal(t, 97, srs.Metadata().SampleSize)
}

func TestSimpleRandomSample_ConfidenceRange(t *testing.T) {
	for _, conf := range []float64{2.0, -0.95} {
		srs, err := NewSimpleRandomSample(100, conf, 0.02)
		assert.ErrorIs(t, err, ErrConfidenceRange)
		assert.Contains(t, err.Error(), "between 0 and 1")
		assert.Nil(t, srs)
	}

	for _, conf := range []float64{0, 1} {
		_, err := NewSimpleRandomSample(100, conf, 0.02)
		assert.NoError(t, err, "confidence %v is on the closed interval", conf)
	}
}

func TestSimpleRandomSample_ConfidenceType(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{[]float64{0.95, 0.9}, "confidence must be a float: []float64"},
		{1, "confidence must be a float: int"},
		{"0.95", "confidence must be a float: string"},
		{nil, "confidence must be a float: <nil>"},
	}

	for _, tt := range tests {
		_, err := NewSimpleRandomSample(100, tt.value, 0.02)
		assert.ErrorIs(t, err, ErrConfidenceType)
		assert.EqualError(t, err, tt.want)
	}

	_, err := NewSimpleRandomSample(100, float32(0.95), 0.02)
	assert.NoError(t, err)
}

func TestSimpleRandomSample_Rejects(t *testing.T) {
	_, err := NewSimpleRandomSample(0, 0.95, 0.02)
	assert.ErrorIs(t, err, ErrInvalidPopulationSize)

	_, err = NewSimpleRandomSample(100, 0.95, 0)
	assert.ErrorIs(t, err, ErrInvalidMarginOfError)

	_, err = NewSimpleRandomSample(100, 0.95, 0.02, WithPopulationVariance(0))
	assert.ErrorIs(t, err, ErrInvalidVariance)
}

func TestSimpleRandomSample_DesignMatchesCalculator(t *testing.T) {
	srs, err := NewSimpleRandomSample(1000, 0.99, 0.02, WithPopulationVariance(0.5))
	require.NoError(t, err)

	design, err := srs.Design()
	require.NoError(t, err)

	n, ok := design.SampleSize()
	require.True(t, ok)
	assert.Equal(t, srs.SampleSize(), n)

	calc, err := NewCalculator(design)
	require.NoError(t, err)
	recomputed, err := calc.Calculate()
	require.NoError(t, err)

	n, _ = recomputed.SampleSize()
	assert.Equal(t, 893, n, "facade and calculator must agree")
}

func TestSimpleRandomSample_ThreeDecimalConfidence(t *testing.T) {
	tests := []struct {
		conf  float64
		wantZ float64
		want  int
	}{
		{0.955, 2.00, 715},
		{0.996, 2.88, 839},
		{0.999, 3.29, 872},
	}

	for _, tt := range tests {
		srs, err := NewSimpleRandomSample(1000, tt.conf, 0.02)
		require.NoError(t, err)

		assert.Equal(t, tt.wantZ, srs.ZScore(), "z for confidence %v", tt.conf)
		assert.Equal(t, tt.want, srs.SampleSize(), "n for confidence %v", tt.conf)
		assert.Equal(t, srs.ZScore(), srs.Metadata().ZScore)

		t.Logf("  conf=%v → z=%.2f, n=%d", tt.conf, srs.ZScore(), srs.SampleSize())
	}

	// Alpha stays a two-decimal display value
	srs, err := NewSimpleRandomSample(1000, 0.999, 0.02)
	require.NoError(t, err)
	assert.Equal(t, 0.0, srs.Alpha())
}

func TestSimpleRandomSample_MatchesFormula(t *testing.T) {
	// Every constructible facade sizes without a formula error
	for _, N := range []int{1, 10, 1000} {
		for _, conf := range []float64{0, 0.5, 0.95, 0.999, 1} {
			for _, margin := range []float64{0.001, 0.05, 1, 100} {
				srs, err := NewSimpleRandomSample(N, conf, margin)
				require.NoError(t, err)

				want, err := SimpleRandomSampleSize(srs.ZScore(), srs.PopulationVariance(), margin, N)
				require.NoError(t, err, "N=%d conf=%v e=%v", N, conf, margin)
				assert.Equal(t, want, srs.SampleSize(), "N=%d conf=%v e=%v", N, conf, margin)
			}
		}
	}

	srs, err := NewSimpleRandomSample(1000, 0.95, 0.02)
	require.NoError(t, err)
	_, err = srs.CalculatePopulationVariance(0.001)
	require.NoError(t, err)

	want, err := SimpleRandomSampleSize(srs.ZScore(), srs.PopulationVariance(), 0.02, 1000)
	require.NoError(t, err)
	assert.Equal(t, want, srs.SampleSize())
}
