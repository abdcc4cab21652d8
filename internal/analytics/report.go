package analytics

import (
	"time"

	"ea-sentinel/internal/types"
)

// Analyze runs every engine over a trade sequence and bundles the results.
func Analyze(trades []types.Trade, source string, skippedRows int) types.AnalysisReport {
	stats := Calculate(trades)
	return types.AnalysisReport{
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		TradeCount:  len(trades),
		SkippedRows: skippedRows,
		Stats:       stats,
		RiskFlags:   DetectRisks(trades, stats),
		Sessions:    Sessions(trades),
	}
}
