package formulas

import (
	"github.com/markcheno/go-talib"
)

// CumulativeReturns calculates the running growth of 1 unit invested at
// the start of the series
//
// Formula:
//
//	cumulative[0] = 1 + returns[0]
//	cumulative[i] = cumulative[i-1] x (1 + returns[i])
func CumulativeReturns(returns []float64) []float64 {
	if len(returns) == 0 {
		return []float64{}
	}

	cumulative := make([]float64, len(returns))
	acc := 1.0
	for i, ret := range returns {
		acc *= 1 + ret
		cumulative[i] = acc
	}

	return cumulative
}

// SmoothSeries calculates a simple moving average overlay for chart series.
// The first period-1 values have no full window and are left as zero by
// talib conventions; callers render them as gaps.
//
// Returns nil when the series is shorter than the smoothing period.
func SmoothSeries(series []float64, period int) []float64 {
	if period < 2 || len(series) < period {
		return nil
	}

	return talib.Sma(series, period)
}
