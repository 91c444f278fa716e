package analysis

import "fmt"

// AggregateReturns combines per-ticker returns into one weighted portfolio
// return per date: the dot product of each date's row with the weight
// vector.
//
// Every weighted ticker must have a column in the return table; a missing
// column is a configuration mismatch (typically a ticker with no price
// history for the chosen period).
func AggregateReturns(table ReturnTable, weights map[string]float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("no weights provided")
	}

	for ticker := range weights {
		if _, ok := table.Returns[ticker]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrWeightMismatch, ticker)
		}
	}

	aggregated := make([]float64, table.Rows())
	for ticker, weight := range weights {
		for i, ret := range table.Returns[ticker] {
			aggregated[i] += weight * ret
		}
	}

	return aggregated, nil
}
