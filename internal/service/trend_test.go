package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSeriesRequiresTwoPoints(t *testing.T) {
	_, _, ok := AnalyzeSeries(nil)
	assert.False(t, ok)

	_, _, ok = AnalyzeSeries([]float64{75})
	assert.False(t, ok)
}

func TestAnalyzeSeriesImprovement(t *testing.T) {
	t.Run("positive change", func(t *testing.T) {
		imp, _, ok := AnalyzeSeries([]float64{60, 72, 80})
		require.True(t, ok)
		assert.InDelta(t, 20.0, imp.Change, 1e-9)
		assert.InDelta(t, 100.0/3, imp.ChangePercent, 1e-9)
		assert.True(t, imp.Improved)
	})

	t.Run("negative change", func(t *testing.T) {
		imp, _, ok := AnalyzeSeries([]float64{80, 75, 70})
		require.True(t, ok)
		assert.InDelta(t, -10.0, imp.Change, 1e-9)
		assert.InDelta(t, -12.5, imp.ChangePercent, 1e-9)
		assert.False(t, imp.Improved)
	})

	t.Run("zero first value yields zero percent", func(t *testing.T) {
		imp, _, ok := AnalyzeSeries([]float64{0, 50})
		require.True(t, ok)
		assert.InDelta(t, 50.0, imp.Change, 1e-9)
		assert.Equal(t, 0.0, imp.ChangePercent)
		assert.True(t, imp.Improved)
	})

	t.Run("unchanged is not improved", func(t *testing.T) {
		imp, _, ok := AnalyzeSeries([]float64{70, 75, 70})
		require.True(t, ok)
		assert.Equal(t, 0.0, imp.Change)
		assert.False(t, imp.Improved)
	})
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   Trend
	}{
		{"steadily rising", []float64{60, 65, 70, 78}, TrendRising},
		{"steadily falling", []float64{90, 82, 75, 70}, TrendFalling},
		{"flat within the band", []float64{70, 70.2, 70.4, 70.1}, TrendStable},
		{"alternating", []float64{60, 70, 60, 70, 60}, TrendVolatile},
		{"mostly rising with one dip", []float64{60, 65, 62, 70, 75, 80}, TrendRising},
		{"no clear majority", []float64{60, 65, 64.8, 60, 59.9}, TrendVolatile},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, trend, ok := AnalyzeSeries(tc.values)
			require.True(t, ok)
			assert.Equal(t, tc.want, trend)
		})
	}
}

// Classification depends only on each step's sign and magnitude class, not
// on the specific sizes: swapping a step delta for another of the same
// class must not change the outcome.
func TestClassifyTrendMagnitudeInvariance(t *testing.T) {
	t.Run("rising steps of any size", func(t *testing.T) {
		_, small, ok := AnalyzeSeries([]float64{60, 60.5, 61})
		require.True(t, ok)
		_, large, ok := AnalyzeSeries([]float64{60, 85, 100})
		require.True(t, ok)
		assert.Equal(t, small, large)
		assert.Equal(t, TrendRising, small)
	})

	t.Run("stable steps of any size inside the band", func(t *testing.T) {
		_, tiny, ok := AnalyzeSeries([]float64{70, 70.01, 70.02})
		require.True(t, ok)
		_, nearBand, ok := AnalyzeSeries([]float64{70, 70.49, 70.0})
		require.True(t, ok)
		assert.Equal(t, tiny, nearBand)
		assert.Equal(t, TrendStable, tiny)
	})
}
