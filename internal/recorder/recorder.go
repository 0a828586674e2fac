package recorder

import (
	"context"
	"time"

	"MarketScout/internal/model"
)

// Recorder persists price observations so later runs can build a price
// sequence for trend analysis.
type Recorder interface {
	RecordObservation(ctx context.Context, runID string, rec model.SymbolRecord, observedAt time.Time) error
	// PriceHistory returns up to limit of the most recent observations for
	// symbol, oldest first.
	PriceHistory(ctx context.Context, symbol string, limit int) ([]model.PriceObservation, error)
	Close() error
}
