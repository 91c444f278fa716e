package analysis

import "fmt"

// Benchmark is a comparison index the portfolio can be measured against
type Benchmark struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Benchmarks is the fixed set of supported comparison indices
var Benchmarks = []Benchmark{
	{Key: "sp500", Name: "S&P 500", Symbol: "^GSPC"},
	{Key: "dowjones", Name: "Dow Jones", Symbol: "^DJI"},
	{Key: "ftse100", Name: "FTSE 100", Symbol: "^FTSE"},
	{Key: "nikkei225", Name: "Nikkei 225", Symbol: "^N225"},
	{Key: "eurostoxx50", Name: "Euro Stoxx 50", Symbol: "^STOXX50E"},
	{Key: "nifty50", Name: "Nifty 50", Symbol: "^NSEI"},
}

// Periods is the fixed set of supported lookback periods
var Periods = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}

// BenchmarkByKey resolves a benchmark by its key
func BenchmarkByKey(key string) (Benchmark, error) {
	for _, b := range Benchmarks {
		if b.Key == key {
			return b, nil
		}
	}
	return Benchmark{}, fmt.Errorf("%w: unknown benchmark %q", ErrInvalidRequest, key)
}

// ValidatePeriod checks the lookback period against the supported enum
func ValidatePeriod(period string) error {
	for _, p := range Periods {
		if p == period {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown period %q", ErrInvalidRequest, period)
}
