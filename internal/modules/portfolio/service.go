package portfolio

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aristath/varwatch/internal/events"
)

// ErrEmptyPortfolio is returned by operations that need at least one holding
var ErrEmptyPortfolio = errors.New("portfolio is empty")

// Service owns the in-memory session portfolio.
// The list only ever grows during a session; it is lost on restart.
type Service struct {
	mu       sync.RWMutex
	holdings []Holding
	events   *events.Manager
	log      zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		events: eventManager,
		log:    log.With().Str("service", "portfolio").Logger(),
	}
}

// Add validates and appends a holding to the session portfolio
func (s *Service) Add(h Holding) (Holding, error) {
	h.Ticker = strings.ToUpper(strings.TrimSpace(h.Ticker))

	if h.Ticker == "" {
		return Holding{}, fmt.Errorf("ticker is required")
	}
	if h.AvgPrice <= 0 {
		return Holding{}, fmt.Errorf("average price must be positive, got %v", h.AvgPrice)
	}
	if h.Quantity < 1 {
		return Holding{}, fmt.Errorf("quantity must be at least 1, got %d", h.Quantity)
	}

	s.mu.Lock()
	s.holdings = append(s.holdings, h)
	count := len(s.holdings)
	s.mu.Unlock()

	s.log.Info().
		Str("ticker", h.Ticker).
		Float64("avg_price", h.AvgPrice).
		Int("quantity", h.Quantity).
		Msg("Holding added")

	s.events.Emit("portfolio", events.HoldingAdded, map[string]interface{}{
		"ticker":   h.Ticker,
		"holdings": count,
	})

	return h, nil
}

// List returns the holdings in insertion order
func (s *Service) List() []Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

// Count returns the number of holdings
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.holdings)
}

// Summary computes total value and per-holding weights.
// Returns ErrEmptyPortfolio when no holdings exist (weights would divide
// by zero).
func (s *Service) Summary() (Summary, error) {
	holdings := s.List()
	if len(holdings) == 0 {
		return Summary{}, ErrEmptyPortfolio
	}

	totalValue := 0.0
	for _, h := range holdings {
		totalValue += h.Investment()
	}

	views := make([]HoldingView, len(holdings))
	for i, h := range holdings {
		investment := h.Investment()
		views[i] = HoldingView{
			Ticker:     h.Ticker,
			AvgPrice:   h.AvgPrice,
			Quantity:   h.Quantity,
			Investment: investment,
			Weight:     investment / totalValue,
		}
	}

	return Summary{
		Holdings:   views,
		TotalValue: totalValue,
	}, nil
}
