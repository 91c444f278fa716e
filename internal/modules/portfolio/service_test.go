package portfolio

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/varwatch/internal/events"
)

func newTestService() *Service {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	return NewService(events.NewManager(log), log)
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name    string
		holding Holding
		wantErr string
	}{
		{
			name:    "empty ticker",
			holding: Holding{Ticker: "  ", AvgPrice: 100, Quantity: 1},
			wantErr: "ticker is required",
		},
		{
			name:    "zero price",
			holding: Holding{Ticker: "AAPL", AvgPrice: 0, Quantity: 1},
			wantErr: "average price must be positive",
		},
		{
			name:    "negative price",
			holding: Holding{Ticker: "AAPL", AvgPrice: -5, Quantity: 1},
			wantErr: "average price must be positive",
		},
		{
			name:    "zero quantity",
			holding: Holding{Ticker: "AAPL", AvgPrice: 100, Quantity: 0},
			wantErr: "quantity must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			_, err := svc.Add(tt.holding)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 0, svc.Count())
		})
	}
}

func TestAdd_UppercasesTicker(t *testing.T) {
	svc := newTestService()

	h, err := svc.Add(Holding{Ticker: "aapl", AvgPrice: 100, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", h.Ticker)
}

func TestSummary_EmptyPortfolio(t *testing.T) {
	svc := newTestService()

	_, err := svc.Summary()
	assert.ErrorIs(t, err, ErrEmptyPortfolio)
}

func TestSummary_TwoHoldingScenario(t *testing.T) {
	// A: $100 x 10 = $1000, B: $50 x 20 = $1000, total $2000, weights 0.5/0.5
	svc := newTestService()

	_, err := svc.Add(Holding{Ticker: "A", AvgPrice: 100, Quantity: 10})
	require.NoError(t, err)
	_, err = svc.Add(Holding{Ticker: "B", AvgPrice: 50, Quantity: 20})
	require.NoError(t, err)

	summary, err := svc.Summary()
	require.NoError(t, err)

	assert.InDelta(t, 2000.0, summary.TotalValue, 1e-9)
	require.Len(t, summary.Holdings, 2)
	assert.InDelta(t, 1000.0, summary.Holdings[0].Investment, 1e-9)
	assert.InDelta(t, 1000.0, summary.Holdings[1].Investment, 1e-9)
	assert.InDelta(t, 0.5, summary.Holdings[0].Weight, 1e-9)
	assert.InDelta(t, 0.5, summary.Holdings[1].Weight, 1e-9)
}

func TestSummary_WeightsSumToOne(t *testing.T) {
	svc := newTestService()

	holdings := []Holding{
		{Ticker: "AAPL", AvgPrice: 173.21, Quantity: 7},
		{Ticker: "MSFT", AvgPrice: 402.99, Quantity: 3},
		{Ticker: "TSLA", AvgPrice: 219.50, Quantity: 11},
		{Ticker: "KO", AvgPrice: 61.33, Quantity: 42},
	}
	for _, h := range holdings {
		_, err := svc.Add(h)
		require.NoError(t, err)
	}

	summary, err := svc.Summary()
	require.NoError(t, err)

	sum := 0.0
	for _, w := range summary.Weights() {
		sum += w
	}
	assert.True(t, math.Abs(sum-1.0) < 1e-9, "weights sum to %v", sum)
}

func TestSummary_PreservesInsertionOrder(t *testing.T) {
	svc := newTestService()

	for _, ticker := range []string{"MSFT", "AAPL", "KO"} {
		_, err := svc.Add(Holding{Ticker: ticker, AvgPrice: 10, Quantity: 1})
		require.NoError(t, err)
	}

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT", "AAPL", "KO"}, summary.Tickers())
}

func TestWeights_DuplicateTickerAccumulates(t *testing.T) {
	svc := newTestService()

	_, err := svc.Add(Holding{Ticker: "AAPL", AvgPrice: 100, Quantity: 5})
	require.NoError(t, err)
	_, err = svc.Add(Holding{Ticker: "AAPL", AvgPrice: 120, Quantity: 5})
	require.NoError(t, err)

	summary, err := svc.Summary()
	require.NoError(t, err)

	weights := summary.Weights()
	require.Len(t, weights, 1)
	assert.InDelta(t, 1.0, weights["AAPL"], 1e-9)
	assert.Equal(t, []string{"AAPL"}, summary.Tickers())
}
