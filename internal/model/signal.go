package model

// Trend is the net direction of a price sequence.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUpward
	TrendDownward
)

func (t Trend) String() string {
	switch t {
	case TrendUpward:
		return "upward"
	case TrendDownward:
		return "downward"
	default:
		return "flat"
	}
}

// Opportunity labels emitted by the analyzer.
const (
	OpportunityBuy     = "Buy signal detected"
	OpportunitySell    = "Sell signal detected"
	OpportunityNoTrend = "No clear trend"
)

// AnalysisResult is the outcome of a trend analysis. The zero value means the
// analysis was unavailable.
type AnalysisResult struct {
	Opportunity string `json:"opportunity,omitempty"`
}

// Empty reports whether the analysis produced nothing.
func (a AnalysisResult) Empty() bool { return a.Opportunity == "" }
