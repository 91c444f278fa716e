package marketdata

// PricePoint is one date's adjusted close for a symbol
type PricePoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	AdjClose float64 `json:"adj_close"`
}

// PriceTable holds aligned adjusted-close history for a set of symbols.
// Dates are ascending and shared by every column: any date missing for one
// symbol has been dropped for all symbols.
type PriceTable struct {
	Dates   []string             `json:"dates"`
	Columns []string             `json:"columns"`
	Prices  map[string][]float64 `json:"prices"`
}

// Rows returns the number of aligned dates
func (t PriceTable) Rows() int {
	return len(t.Dates)
}

// HasColumn reports whether the table contains history for a symbol
func (t PriceTable) HasColumn(symbol string) bool {
	_, ok := t.Prices[symbol]
	return ok
}
