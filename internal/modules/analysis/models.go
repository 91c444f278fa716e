package analysis

import (
	"errors"
	"time"
)

// Error kinds surfaced by the analysis pipeline. Each aborts only the
// current run; the session portfolio remains intact for retry.
var (
	// ErrInsufficientHistory means fewer than 2 aligned price rows
	// survived, so not a single return can be computed
	ErrInsufficientHistory = errors.New("insufficient aligned price history")

	// ErrWeightMismatch means a weighted ticker has no column in the
	// return table, usually because it lacked history for the period
	ErrWeightMismatch = errors.New("weight ticker missing from return table")

	// ErrInvalidRequest means the benchmark, period or confidence level
	// is not one of the supported values
	ErrInvalidRequest = errors.New("invalid analysis request")
)

// ReturnTable holds aligned fractional returns, one row per date after the
// first aligned price date
type ReturnTable struct {
	Dates   []string             `json:"dates"`
	Columns []string             `json:"columns"`
	Returns map[string][]float64 `json:"returns"`
}

// Rows returns the number of return observations
func (t ReturnTable) Rows() int {
	return len(t.Dates)
}

// Request selects benchmark, lookback period and VaR confidence for a run
type Request struct {
	Benchmark  string `json:"benchmark"`
	Period     string `json:"period"`
	Confidence int    `json:"confidence"`
}

// Metrics holds the risk/return figures for one return series.
// Sharpe and Sortino are nil when their denominator is undefined.
// Degenerate reports a series-level collapse (too few observations or zero
// volatility); a nil Sortino on its own only means the series had too few
// negative returns for a downside deviation.
type Metrics struct {
	MeanReturn           float64  `json:"mean_return"`
	StdDev               float64  `json:"std_dev"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
	Sharpe               *float64 `json:"sharpe"`
	Sortino              *float64 `json:"sortino"`
	ValueAtRisk          float64  `json:"value_at_risk"`
	Degenerate           bool     `json:"degenerate"`
}

// ChartSeries is a date-indexed line for the cumulative-returns comparison
type ChartSeries struct {
	Dates    []string  `json:"dates"`
	Values   []float64 `json:"values"`
	Smoothed []float64 `json:"smoothed,omitempty"`
}

// Result is the complete output of one analysis run
type Result struct {
	RunID               string      `json:"run_id"`
	GeneratedAt         time.Time   `json:"generated_at"`
	Benchmark           Benchmark   `json:"benchmark"`
	Period              string      `json:"period"`
	Confidence          int         `json:"confidence"`
	PortfolioValue      float64     `json:"portfolio_value"`
	PortfolioMetrics    Metrics     `json:"portfolio_metrics"`
	BenchmarkMetrics    Metrics     `json:"benchmark_metrics"`
	CumulativePortfolio ChartSeries `json:"cumulative_portfolio"`
	CumulativeBenchmark ChartSeries `json:"cumulative_benchmark"`
}
