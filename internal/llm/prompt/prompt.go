package prompt

import (
	"fmt"
	"strings"

	"ea-sentinel/internal/types"
)

// DefaultSystem is the system instruction used when none is configured.
const DefaultSystem = "You are a trading-performance auditor. Base every statement " +
	"strictly on the figures provided; never invent numbers."

// Build serializes a report into the user prompt all providers share.
func Build(report types.AnalysisReport) string {
	var b strings.Builder
	s := report.Stats

	fmt.Fprintf(&b, "Trading performance summary (%d trades, source %s):\n", report.TradeCount, report.Source)
	fmt.Fprintf(&b, "Net profit: %.2f, Win rate: %.1f%%, Profit factor: %.2f\n", s.NetProfit, s.WinRate, s.ProfitFactor)
	fmt.Fprintf(&b, "Max drawdown: %.2f, Avg win: %.2f, Avg loss: %.2f\n", s.MaxDrawdown, s.AvgWin, s.AvgLoss)
	fmt.Fprintf(&b, "Longest win streak: %d, longest loss streak: %d\n", s.ConsecutiveWins, s.ConsecutiveLosses)

	if len(report.RiskFlags) > 0 {
		b.WriteString("Risk flags:\n")
		for _, f := range report.RiskFlags {
			fmt.Fprintf(&b, "- [%s/%s] %s\n", f.Type, f.Level, f.Message)
		}
	}
	if len(report.Sessions) > 0 {
		b.WriteString("Session breakdown:\n")
		for _, sess := range report.Sessions {
			fmt.Fprintf(&b, "- %s: %d trades, total %.2f, win rate %.1f%%\n",
				sess.Session, sess.Count, sess.TotalProfit, sess.WinRate)
		}
	}

	b.WriteString("\nWrite a short, grounded assessment of this strategy's health.")
	return b.String()
}
