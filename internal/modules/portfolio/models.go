package portfolio

// Holding represents one position in the session portfolio.
// Holdings are immutable once added.
type Holding struct {
	Ticker   string  `json:"ticker"`
	AvgPrice float64 `json:"avg_price"`
	Quantity int     `json:"quantity"`
}

// Investment returns the total amount invested in this holding
func (h Holding) Investment() float64 {
	return h.AvgPrice * float64(h.Quantity)
}

// HoldingView is a Holding enriched with derived portfolio figures
type HoldingView struct {
	Ticker     string  `json:"ticker"`
	AvgPrice   float64 `json:"avg_price"`
	Quantity   int     `json:"quantity"`
	Investment float64 `json:"investment"`
	Weight     float64 `json:"weight"`
}

// Summary represents the full portfolio with derived values.
// Holdings keep insertion order for display.
type Summary struct {
	Holdings   []HoldingView `json:"holdings"`
	TotalValue float64       `json:"total_value"`
}

// Weights returns the weight vector indexed by ticker
func (s Summary) Weights() map[string]float64 {
	weights := make(map[string]float64, len(s.Holdings))
	for _, h := range s.Holdings {
		weights[h.Ticker] += h.Weight
	}
	return weights
}

// Tickers returns the distinct tickers in insertion order
func (s Summary) Tickers() []string {
	seen := make(map[string]bool, len(s.Holdings))
	var tickers []string
	for _, h := range s.Holdings {
		if !seen[h.Ticker] {
			seen[h.Ticker] = true
			tickers = append(tickers, h.Ticker)
		}
	}
	return tickers
}
