package market

import (
	"context"

	"github.com/shopspring/decimal"
)

// Point is one close price of a historical series.
// Date is kept as the backend sends it (YYYY-MM-DD).
type Point struct {
	Date  string          `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// PriceMap holds the latest price per symbol.
type PriceMap map[string]decimal.Decimal

// AverageMap holds the average price over the lookback window per symbol.
type AverageMap map[string]decimal.Decimal

// HistoricalMap holds the close price series per symbol, oldest first.
type HistoricalMap map[string][]Point

// Backend is the remote stock API the dashboard synchronizes against.
type Backend interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
	Average(ctx context.Context, symbol string, days string) (decimal.Decimal, error)
	Historical(ctx context.Context, symbols []string) (HistoricalMap, error)
}
