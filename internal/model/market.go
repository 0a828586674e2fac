package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceObservation is a single recorded price. Its position in a slice is its
// position in the sequence.
type PriceObservation struct {
	Price      decimal.Decimal `json:"price"`
	ObservedAt time.Time       `json:"observed_at,omitempty"`
}

// SymbolRecord is the normalized market data for one symbol.
type SymbolRecord struct {
	Symbol string             `json:"symbol"`
	Price  decimal.Decimal    `json:"price"`
	Prices []PriceObservation `json:"prices,omitempty"`
}

// IsEmpty reports whether the record carries no data at all.
func (r *SymbolRecord) IsEmpty() bool {
	return r == nil || (r.Symbol == "" && r.Price.IsZero() && len(r.Prices) == 0)
}

// CollectionResult maps a requested symbol to its normalized record.
// Symbols that could not be fetched or normalized have no entry.
type CollectionResult map[string]SymbolRecord

// ParsePrice converts a decoded JSON value into a decimal price.
func ParsePrice(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		return decimal.NewFromString(n)
	case nil:
		return decimal.Zero, errors.New("price missing")
	default:
		return decimal.Zero, fmt.Errorf("unexpected price type %T", v)
	}
}
