package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/varwatch/internal/events"
	"github.com/aristath/varwatch/internal/modules/marketdata"
	"github.com/aristath/varwatch/internal/modules/portfolio"
	"github.com/aristath/varwatch/pkg/formulas"
)

// PortfolioReader provides the session portfolio state for a run
type PortfolioReader interface {
	Summary() (portfolio.Summary, error)
}

// PriceTableProvider supplies aligned price history
type PriceTableProvider interface {
	GetPriceTable(symbols []string, period string) (marketdata.PriceTable, error)
}

// Service orchestrates analysis runs. Each run is stateless: it reads the
// session portfolio, fetches prices, and computes metrics from scratch.
type Service struct {
	portfolio     PortfolioReader
	prices        PriceTableProvider
	riskFreeRate  float64 // annual
	smoothingSpan int
	events        *events.Manager
	log           zerolog.Logger
}

// NewService creates a new analysis service
func NewService(
	portfolioReader PortfolioReader,
	prices PriceTableProvider,
	riskFreeRate float64,
	smoothingSpan int,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		portfolio:     portfolioReader,
		prices:        prices,
		riskFreeRate:  riskFreeRate,
		smoothingSpan: smoothingSpan,
		events:        eventManager,
		log:           log.With().Str("service", "analysis").Logger(),
	}
}

// Run executes one full analysis: portfolio metrics, benchmark metrics and
// the cumulative-returns comparison. Every failure is surfaced as an error
// event before being returned; the session portfolio is untouched either way.
func (s *Service) Run(req Request) (*Result, error) {
	result, err := s.run(req)
	if err != nil {
		s.events.Emit("analysis", events.ErrorOccurred, map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return result, nil
}

func (s *Service) run(req Request) (*Result, error) {
	summary, err := s.portfolio.Summary()
	if err != nil {
		return nil, err
	}

	benchmark, err := BenchmarkByKey(req.Benchmark)
	if err != nil {
		return nil, err
	}
	if err := ValidatePeriod(req.Period); err != nil {
		return nil, err
	}
	if _, err := formulas.ZScore(req.Confidence); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	// Portfolio side
	priceTable, err := s.prices.GetPriceTable(summary.Tickers(), req.Period)
	if err != nil {
		return nil, err
	}

	returnTable, err := BuildReturnTable(priceTable)
	if err != nil {
		return nil, err
	}

	portfolioReturns, err := AggregateReturns(returnTable, summary.Weights())
	if err != nil {
		return nil, err
	}

	// Benchmark side
	benchTable, err := s.prices.GetPriceTable([]string{benchmark.Symbol}, req.Period)
	if err != nil {
		return nil, err
	}
	if !benchTable.HasColumn(benchmark.Symbol) {
		return nil, fmt.Errorf("%w for %s over %s", marketdata.ErrNoData, benchmark.Symbol, req.Period)
	}

	benchReturnTable, err := BuildReturnTable(benchTable)
	if err != nil {
		return nil, err
	}
	benchReturns := benchReturnTable.Returns[benchmark.Symbol]

	// Each series uses its own standard deviation for VaR
	portfolioMetrics, err := s.computeMetrics(portfolioReturns, req.Confidence, summary.TotalValue)
	if err != nil {
		return nil, err
	}
	benchmarkMetrics, err := s.computeMetrics(benchReturns, req.Confidence, summary.TotalValue)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:               uuid.NewString(),
		GeneratedAt:         time.Now().UTC(),
		Benchmark:           benchmark,
		Period:              req.Period,
		Confidence:          req.Confidence,
		PortfolioValue:      summary.TotalValue,
		PortfolioMetrics:    portfolioMetrics,
		BenchmarkMetrics:    benchmarkMetrics,
		CumulativePortfolio: s.chartSeries(returnTable.Dates, portfolioReturns),
		CumulativeBenchmark: s.chartSeries(benchReturnTable.Dates, benchReturns),
	}

	s.log.Info().
		Str("run_id", result.RunID).
		Str("benchmark", benchmark.Key).
		Str("period", req.Period).
		Int("confidence", req.Confidence).
		Int("observations", len(portfolioReturns)).
		Msg("Analysis run completed")

	s.events.Emit("analysis", events.AnalysisCompleted, map[string]interface{}{
		"run_id":    result.RunID,
		"benchmark": benchmark.Key,
		"period":    req.Period,
	})

	return result, nil
}

// computeMetrics evaluates the full metric set over one return series
func (s *Service) computeMetrics(returns []float64, confidence int, portfolioValue float64) (Metrics, error) {
	periodicRiskFree := formulas.PeriodicRate(s.riskFreeRate)

	stdDev := formulas.StdDev(returns)
	valueAtRisk, err := formulas.ValueAtRisk(stdDev, confidence, portfolioValue)
	if err != nil {
		return Metrics{}, err
	}

	sharpe := formulas.SharpeRatio(returns, periodicRiskFree)
	sortino := formulas.SortinoRatio(returns, periodicRiskFree)

	return Metrics{
		MeanReturn:           formulas.Mean(returns),
		StdDev:               stdDev,
		AnnualizedVolatility: formulas.AnnualizedVolatility(returns),
		Sharpe:               sharpe,
		Sortino:              sortino,
		ValueAtRisk:          valueAtRisk,
		// A nil Sharpe means the whole series collapsed (too few
		// observations or zero volatility); a nil Sortino alone only
		// means too few negative returns for a downside deviation
		Degenerate: sharpe == nil,
	}, nil
}

func (s *Service) chartSeries(dates []string, returns []float64) ChartSeries {
	cumulative := formulas.CumulativeReturns(returns)

	series := ChartSeries{
		Dates:  dates,
		Values: cumulative,
	}
	if s.smoothingSpan > 0 {
		series.Smoothed = formulas.SmoothSeries(cumulative, s.smoothingSpan)
	}
	return series
}
