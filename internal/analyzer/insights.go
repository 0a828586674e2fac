package analyzer

import (
	"errors"

	"MarketScout/internal/model"
)

// ErrInsightsUnsupported is returned by generators that have no behavior yet.
var ErrInsightsUnsupported = errors.New("insight generation not supported")

// Insights carries actionable output derived from an analysis. It has no
// fields until a generator defines some.
type Insights struct{}

// InsightGenerator turns an analysis into insights.
type InsightGenerator interface {
	GenerateInsights(analysis model.AnalysisResult) (*Insights, error)
}

// NoInsights is the default generator.
type NoInsights struct{}

func (NoInsights) GenerateInsights(model.AnalysisResult) (*Insights, error) {
	return nil, ErrInsightsUnsupported
}
