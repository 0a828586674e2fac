package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"MarketScout/internal/analyzer"
	"MarketScout/internal/logger"
	"MarketScout/internal/model"
	"MarketScout/internal/notifier"
	"MarketScout/internal/recorder"
)

// Collector produces normalized records for a list of symbols.
type Collector interface {
	Collect(ctx context.Context, symbols []string) model.CollectionResult
}

// Pipeline runs one collect-and-analyze pass over a fixed symbol list.
type Pipeline struct {
	Collector    Collector
	Recorder     recorder.Recorder
	Notifier     notifier.Notifier
	Insights     analyzer.InsightGenerator
	Symbols      []string
	HistoryLimit int
	Now          func() time.Time
	NewRunID     func() string
}

// New creates a Pipeline. A nil recorder or notifier is replaced with a no-op.
func New(col Collector, rec recorder.Recorder, n notifier.Notifier, symbols []string, historyLimit int) *Pipeline {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if n == nil {
		n = notifier.NewNoopNotifier()
	}
	return &Pipeline{
		Collector:    col,
		Recorder:     rec,
		Notifier:     n,
		Insights:     analyzer.NoInsights{},
		Symbols:      symbols,
		HistoryLimit: historyLimit,
		Now:          time.Now,
		NewRunID:     uuid.NewString,
	}
}

// Run collects every symbol, records the observations, analyzes each
// collected record against its stored history and notifies the result.
// Recorder and notifier failures are logged and do not stop the run.
func (p *Pipeline) Run(ctx context.Context) model.Report {
	report := model.Report{
		RunID:     p.NewRunID(),
		StartedAt: p.Now().UTC(),
		Analyses:  make(map[string]model.AnalysisResult),
	}
	log := logger.L().With().Str("run_id", report.RunID).Logger()
	log.Info().Strs("symbols", p.Symbols).Msg("run started")

	report.Collected = p.Collector.Collect(ctx, p.Symbols)

	seen := make(map[string]bool, len(p.Symbols))
	for _, symbol := range p.Symbols {
		if seen[symbol] {
			continue
		}
		seen[symbol] = true

		rec, ok := report.Collected[symbol]
		if !ok {
			report.Missing = append(report.Missing, symbol)
			continue
		}

		if err := p.Recorder.RecordObservation(ctx, report.RunID, rec, report.StartedAt); err != nil {
			log.Error().Err(err).Str("symbol", symbol).Msg("record observation")
		}
		rec.Prices = p.history(ctx, rec, report.StartedAt)

		result := analyzer.AnalyzeTrends(&rec)
		report.Analyses[symbol] = result
		log.Info().Str("symbol", symbol).Str("price", rec.Price.String()).
			Int("observations", len(rec.Prices)).Str("opportunity", result.Opportunity).
			Msg("symbol analyzed")

		if p.Insights != nil {
			if _, err := p.Insights.GenerateInsights(result); err != nil && !errors.Is(err, analyzer.ErrInsightsUnsupported) {
				log.Error().Err(err).Str("symbol", symbol).Msg("generate insights")
			}
		}
	}

	log.Info().Int("collected", len(report.Collected)).Strs("missing", report.Missing).Msg("market data collected")

	if err := p.Notifier.Notify(ctx, report); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
	return report
}

// history loads the stored sequence for rec, falling back to the current
// observation alone.
func (p *Pipeline) history(ctx context.Context, rec model.SymbolRecord, at time.Time) []model.PriceObservation {
	current := []model.PriceObservation{{Price: rec.Price, ObservedAt: at}}
	if p.HistoryLimit < 2 {
		return current
	}
	hist, err := p.Recorder.PriceHistory(ctx, rec.Symbol, p.HistoryLimit)
	if err != nil {
		logger.L().Error().Err(err).Str("symbol", rec.Symbol).Msg("load price history")
		return current
	}
	if len(hist) == 0 {
		return current
	}
	return hist
}
