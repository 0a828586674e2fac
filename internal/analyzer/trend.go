package analyzer

import (
	"github.com/shopspring/decimal"

	"MarketScout/internal/model"
)

// Movement thresholds relative to the first price. Both are strict: a last
// price exactly on a bound is flat.
var (
	UpperBound = decimal.RequireFromString("1.05")
	LowerBound = decimal.RequireFromString("0.95")
)

// DetectTrend compares the last price in rec.Prices with the first one.
// Prices are taken in slice order, not sorted by ObservedAt.
func DetectTrend(rec *model.SymbolRecord) model.Trend {
	if rec.IsEmpty() {
		return model.TrendFlat
	}
	prices := extractPrices(rec.Prices)
	if len(prices) < 2 {
		return model.TrendFlat
	}

	first, last := prices[0], prices[len(prices)-1]
	switch {
	case last.GreaterThan(first.Mul(UpperBound)):
		return model.TrendUpward
	case last.LessThan(first.Mul(LowerBound)):
		return model.TrendDownward
	default:
		return model.TrendFlat
	}
}

func extractPrices(obs []model.PriceObservation) []decimal.Decimal {
	prices := make([]decimal.Decimal, len(obs))
	for i, o := range obs {
		prices[i] = o.Price
	}
	return prices
}
