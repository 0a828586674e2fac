package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"MarketScout/internal/model"
)

// FormatReport formats a run report into a Telegram HTML message.
func FormatReport(r model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>MarketScout</b> | %s\n", r.StartedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("run: <code>%s</code>\n\n", r.RunID))

	symbols := make([]string, 0, len(r.Collected))
	for s := range r.Collected {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	if len(symbols) == 0 {
		b.WriteString("No market data collected.\n")
	}
	for _, s := range symbols {
		rec := r.Collected[s]
		opportunity := r.Analyses[s].Opportunity
		if opportunity == "" {
			opportunity = "analysis unavailable"
		}
		b.WriteString(fmt.Sprintf("<b>%s</b>: %s | %s\n", html.EscapeString(s), rec.Price.String(), opportunity))
	}

	if len(r.Missing) > 0 {
		escaped := make([]string, len(r.Missing))
		for i, s := range r.Missing {
			escaped[i] = html.EscapeString(s)
		}
		b.WriteString(fmt.Sprintf("\n⚠️ No data: %s\n", strings.Join(escaped, ", ")))
	}
	return b.String()
}
