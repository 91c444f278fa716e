package formulas

import "fmt"

// zScores maps confidence levels to one-tailed standard normal quantiles.
// The rounded constants are intentional and load-bearing: downstream
// consumers compare VaR figures against these exact multipliers.
var zScores = map[int]float64{
	90: 1.28,
	95: 1.645,
	99: 2.33,
}

// ConfidenceLevels returns the supported VaR confidence levels in
// ascending order.
func ConfidenceLevels() []int {
	return []int{90, 95, 99}
}

// ZScore returns the standard normal quantile for a supported confidence
// level (90, 95 or 99)
func ZScore(confidence int) (float64, error) {
	z, ok := zScores[confidence]
	if !ok {
		return 0, fmt.Errorf("unsupported confidence level: %d (must be one of 90, 95, 99)", confidence)
	}
	return z, nil
}

// ValueAtRisk calculates single-period parametric VaR under a normal
// distribution assumption
//
// VaR Formula:
//
//	VaR = z(confidence) x Standard Deviation of Returns x Portfolio Value
//
// The result is a currency amount: the potential one-period loss magnitude
// at the given confidence level.
func ValueAtRisk(stdDev float64, confidence int, portfolioValue float64) (float64, error) {
	z, err := ZScore(confidence)
	if err != nil {
		return 0, err
	}
	return z * stdDev * portfolioValue, nil
}
