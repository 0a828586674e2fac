package notifier

import (
	"context"

	"MarketScout/internal/model"
)

// Notifier delivers a run report somewhere a human will read it.
type Notifier interface {
	Notify(ctx context.Context, report model.Report) error
}

// NoopNotifier is used when no delivery channel is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (NoopNotifier) Notify(context.Context, model.Report) error { return nil }
