package recorder

import (
	"context"
	"time"

	"MarketScout/internal/model"
)

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordObservation(context.Context, string, model.SymbolRecord, time.Time) error {
	return nil
}

func (n *NoopRecorder) PriceHistory(context.Context, string, int) ([]model.PriceObservation, error) {
	return nil, nil
}

func (n *NoopRecorder) Close() error { return nil }
