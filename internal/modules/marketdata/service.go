package marketdata

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/varwatch/internal/clients/yahoo"
	"github.com/aristath/varwatch/internal/events"
)

var (
	// ErrNoData is returned when the provider has no usable history for
	// a symbol/period combination
	ErrNoData = errors.New("no price data available")

	// ErrFetchFailed is returned when the provider call itself fails
	// (network error, upstream rejection)
	ErrFetchFailed = errors.New("market data fetch failed")
)

// HistoryProvider fetches daily price history for one symbol
type HistoryProvider interface {
	GetHistoricalPrices(symbol string, period string) ([]yahoo.HistoricalPrice, error)
}

// Service assembles aligned price tables, reading through the cache
type Service struct {
	provider HistoryProvider
	cache    *CacheRepository
	ttl      time.Duration
	events   *events.Manager
	log      zerolog.Logger
}

// NewService creates a new market data service
func NewService(
	provider HistoryProvider,
	cache *CacheRepository,
	ttl time.Duration,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		events:   eventManager,
		log:      log.With().Str("service", "marketdata").Logger(),
	}
}

// GetSeries returns the adjusted-close series for one symbol, from cache
// when fresh, otherwise from the provider
func (s *Service) GetSeries(symbol, period string) ([]PricePoint, error) {
	if cached, ok, err := s.cache.GetSeries(symbol, period, s.ttl); err != nil {
		// Cache trouble is logged but never blocks a run
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Price cache read failed")
	} else if ok {
		s.log.Debug().Str("symbol", symbol).Str("period", period).Msg("Price cache hit")
		return cached, nil
	}

	bars, err := s.provider.GetHistoricalPrices(symbol, period)
	if err != nil {
		s.events.Emit("marketdata", events.DataFetchFailed, map[string]interface{}{
			"symbol": symbol,
			"period": period,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, symbol, err)
	}

	if len(bars) == 0 {
		s.events.Emit("marketdata", events.DataFetchFailed, map[string]interface{}{
			"symbol": symbol,
			"period": period,
			"error":  ErrNoData.Error(),
		})
		return nil, fmt.Errorf("%w for %s over %s", ErrNoData, symbol, period)
	}

	series := make([]PricePoint, len(bars))
	for i, bar := range bars {
		series[i] = PricePoint{
			Date:     bar.Date.Format("2006-01-02"),
			AdjClose: bar.AdjClose,
		}
	}

	if err := s.cache.PutSeries(symbol, period, series); err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Price cache write failed")
	}

	return series, nil
}

// GetPriceTable fetches each symbol's series and aligns them on common
// dates. A date missing for any symbol is dropped for all symbols.
func (s *Service) GetPriceTable(symbols []string, period string) (PriceTable, error) {
	symbols = dedupe(symbols)
	if len(symbols) == 0 {
		return PriceTable{}, fmt.Errorf("no symbols requested")
	}

	perSymbol := make(map[string][]PricePoint, len(symbols))
	for _, symbol := range symbols {
		series, err := s.GetSeries(symbol, period)
		if err != nil {
			return PriceTable{}, err
		}
		perSymbol[symbol] = series
	}

	return alignSeries(symbols, perSymbol), nil
}

func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	var out []string
	for _, s := range symbols {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// alignSeries builds a rectangular table from per-symbol series by
// intersecting their date sets (strict alignment)
func alignSeries(symbols []string, perSymbol map[string][]PricePoint) PriceTable {
	// Index each series by date, counting date occurrences across symbols
	byDate := make(map[string]map[string]float64)
	for symbol, series := range perSymbol {
		for _, p := range series {
			if byDate[p.Date] == nil {
				byDate[p.Date] = make(map[string]float64, len(symbols))
			}
			byDate[p.Date][symbol] = p.AdjClose
		}
	}

	var dates []string
	for date, row := range byDate {
		if len(row) == len(symbols) {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	table := PriceTable{
		Dates:   dates,
		Columns: append([]string(nil), symbols...),
		Prices:  make(map[string][]float64, len(symbols)),
	}
	for _, symbol := range symbols {
		column := make([]float64, len(dates))
		for i, date := range dates {
			column[i] = byDate[date][symbol]
		}
		table.Prices[symbol] = column
	}

	return table
}

// CacheStats reports cache size for the system status endpoint
func (s *Service) CacheStats() (int, error) {
	return s.cache.CountRows()
}
