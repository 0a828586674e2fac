package analyzer

import (
	"fmt"

	"MarketScout/internal/logger"
	"MarketScout/internal/model"
)

var detectTrend = DetectTrend

// AnalyzeTrends classifies rec and labels the opportunity. A fault during
// analysis is logged and yields the empty result.
func AnalyzeTrends(rec *model.SymbolRecord) (result model.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error().Str("component", "analyzer").Interface("panic", r).Msg("analysis failed")
			result = model.AnalysisResult{}
		}
	}()

	return model.AnalysisResult{Opportunity: opportunityFor(detectTrend(rec))}
}

// opportunityFor returns the label for t, or "" for an unknown trend.
func opportunityFor(t model.Trend) string {
	switch t {
	case model.TrendUpward:
		return model.OpportunityBuy
	case model.TrendDownward:
		return model.OpportunitySell
	case model.TrendFlat:
		return model.OpportunityNoTrend
	default:
		return ""
	}
}

// AnalyzeRaw analyzes a loosely shaped record such as a decoded JSON object
// with a "prices" list of {"price": <number>} entries. Malformed input is
// logged and yields the empty result.
func AnalyzeRaw(data map[string]any) model.AnalysisResult {
	rec, err := recordFromMap(data)
	if err != nil {
		logger.L().Error().Str("component", "analyzer").Err(err).Msg("analysis failed")
		return model.AnalysisResult{}
	}
	return AnalyzeTrends(rec)
}

// recordFromMap reads only the "prices" list. Every element must be an object
// with a "price" key; the values are parsed only when there are at least two,
// and only the first and last take part in the comparison.
func recordFromMap(data map[string]any) (*model.SymbolRecord, error) {
	if len(data) == 0 {
		return nil, nil
	}
	rec := &model.SymbolRecord{}
	if s, ok := data["symbol"].(string); ok {
		rec.Symbol = s
	}

	raw, ok := data["prices"]
	if !ok {
		return rec, nil
	}
	var items []map[string]any
	switch v := raw.(type) {
	case []map[string]any:
		items = v
	case []any:
		items = make([]map[string]any, len(v))
		for i, el := range v {
			m, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("prices[%d]: expected object, got %T", i, el)
			}
			items[i] = m
		}
	case nil:
		return nil, fmt.Errorf("prices: expected list, got null")
	default:
		return nil, fmt.Errorf("prices: expected list, got %T", raw)
	}

	values := make([]any, len(items))
	for i, item := range items {
		p, ok := item["price"]
		if !ok {
			return nil, fmt.Errorf("prices[%d]: missing price", i)
		}
		values[i] = p
	}
	if len(values) < 2 {
		return rec, nil
	}

	first, err := model.ParsePrice(values[0])
	if err != nil {
		return nil, fmt.Errorf("prices[0]: %w", err)
	}
	last, err := model.ParsePrice(values[len(values)-1])
	if err != nil {
		return nil, fmt.Errorf("prices[%d]: %w", len(values)-1, err)
	}
	rec.Prices = []model.PriceObservation{{Price: first}, {Price: last}}
	return rec, nil
}
