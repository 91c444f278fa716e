package analysis

import (
	"fmt"

	"github.com/aristath/varwatch/internal/modules/marketdata"
	"github.com/aristath/varwatch/pkg/formulas"
)

// BuildReturnTable converts an aligned price table into a table of
// fractional period-over-period returns. The output has one row fewer than
// the input; entry[t] = (price[t] - price[t-1]) / price[t-1].
//
// Fails when fewer than 2 aligned rows are available, since not a single
// return can be computed.
func BuildReturnTable(prices marketdata.PriceTable) (ReturnTable, error) {
	if prices.Rows() < 2 {
		return ReturnTable{}, fmt.Errorf("%w: %d aligned rows, need at least 2", ErrInsufficientHistory, prices.Rows())
	}

	table := ReturnTable{
		Dates:   append([]string(nil), prices.Dates[1:]...),
		Columns: append([]string(nil), prices.Columns...),
		Returns: make(map[string][]float64, len(prices.Columns)),
	}

	for _, symbol := range prices.Columns {
		table.Returns[symbol] = formulas.CalculateReturns(prices.Prices[symbol])
	}

	return table, nil
}
