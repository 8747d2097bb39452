package service

const (
	// Steps smaller than this are counted as stable rather than rising or
	// falling.
	stabilityBand = 0.5

	// Share of steps one direction must exceed to classify the series.
	majorityShare = 0.6
)

// AnalyzeSeries computes the improvement summary and trend classification
// for a year-ordered score series. It requires at least two data points;
// with fewer it reports ok=false and callers keep reporting the series
// itself without an analysis.
func AnalyzeSeries(values []float64) (Improvement, Trend, bool) {
	if len(values) < 2 {
		return Improvement{}, "", false
	}

	first := values[0]
	last := values[len(values)-1]
	change := last - first

	imp := Improvement{
		Change:   change,
		Improved: change > 0,
	}
	if first != 0 {
		imp.ChangePercent = change / first * 100
	}

	return imp, classifyTrend(values), true
}

func classifyTrend(values []float64) Trend {
	rising, falling, stable := 0, 0, 0
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		switch {
		case delta >= stabilityBand:
			rising++
		case delta <= -stabilityBand:
			falling++
		default:
			stable++
		}
	}

	steps := float64(len(values) - 1)
	switch {
	case float64(rising) > steps*majorityShare:
		return TrendRising
	case float64(falling) > steps*majorityShare:
		return TrendFalling
	case float64(stable) > steps*majorityShare:
		return TrendStable
	default:
		return TrendVolatile
	}
}

// analyzeItemSeries attaches improvement and trend to an ItemSeries when it
// has enough points.
func analyzeItemSeries(s *ItemSeries) {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	if imp, trend, ok := AnalyzeSeries(values); ok {
		s.Improvement = &imp
		s.Trend = trend
	}
}
