package formulas

// SharpeRatio calculates the per-period Sharpe Ratio
//
// Sharpe Ratio Formula:
//
//	Sharpe = (Mean Return - Periodic Risk-free Rate) / Standard Deviation of Returns
//
// The ratio is NOT annualized: it is reported in the same period as the
// return series, matching the daily ratios shown alongside daily mean and
// volatility.
//
// Args:
//
//	returns: Array of periodic returns
//	periodicRiskFree: Risk-free rate per period (annual rate / 252 for daily)
//
// Returns:
//
//	Sharpe ratio, or nil when the result is degenerate: fewer than 2
//	returns, or zero volatility (constant return series)
func SharpeRatio(returns []float64, periodicRiskFree float64) *float64 {
	if len(returns) < 2 {
		return nil
	}

	stdDev := StdDev(returns)
	if stdDev == 0 {
		return nil
	}

	sharpe := (Mean(returns) - periodicRiskFree) / stdDev
	return &sharpe
}

// SortinoRatio calculates the per-period Sortino Ratio
//
// Sortino Formula:
//
//	Sortino = (Mean Return - Periodic Risk-free Rate) / Downside Deviation
//	Downside Deviation = sample std dev of returns strictly below zero
//
// The downside deviation is the sample standard deviation of the subset of
// returns that are strictly negative. The sample std dev of a set with
// fewer than two elements is undefined, so series with zero or one negative
// return produce a degenerate (nil) result instead of a numeric crash.
func SortinoRatio(returns []float64, periodicRiskFree float64) *float64 {
	if len(returns) < 2 {
		return nil
	}

	var downside []float64
	for _, ret := range returns {
		if ret < 0 {
			downside = append(downside, ret)
		}
	}

	if len(downside) < 2 {
		return nil
	}

	downsideDeviation := StdDev(downside)
	if downsideDeviation == 0 {
		return nil
	}

	sortino := (Mean(returns) - periodicRiskFree) / downsideDeviation
	return &sortino
}
