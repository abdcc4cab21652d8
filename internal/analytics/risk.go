package analytics

import (
	"fmt"

	"ea-sentinel/internal/types"
)

const (
	lossStreakThreshold = 5
	weakWinRate         = 40.0
	drawdownRatio       = 0.5
)

// DetectRisks evaluates the fixed rule set against a trade batch and its
// stats. Rules run independently in a fixed order (streak, edge, drawdown)
// because the order determines display order downstream. No rule produces a
// timing flag yet.
func DetectRisks(trades []types.Trade, stats types.TradeStats) []types.RiskFlag {
	flags := []types.RiskFlag{}

	if stats.ConsecutiveLosses >= lossStreakThreshold {
		flags = append(flags, types.RiskFlag{
			Type:  types.FlagStreak,
			Level: types.LevelMedium,
			Message: fmt.Sprintf("Detected consecutive loss streak of %d trades. Potential strategy breakdown in current conditions.",
				stats.ConsecutiveLosses),
		})
	}

	expectancy := 0.0
	if stats.TotalTrades > 0 {
		expectancy = stats.NetProfit / float64(stats.TotalTrades)
	}
	if stats.WinRate < weakWinRate && expectancy <= 0 {
		flags = append(flags, types.RiskFlag{
			Type:  types.FlagEdge,
			Level: types.LevelHigh,
			Message: fmt.Sprintf("Win rate is %.1f%% with non-positive expectancy. The strategy may lack a statistical edge.",
				stats.WinRate),
		})
	}

	// Only meaningful for a profitable batch; the ratio is nonsensical when
	// net profit is zero or negative.
	if stats.NetProfit > 0 && stats.MaxDrawdown > stats.NetProfit*drawdownRatio {
		flags = append(flags, types.RiskFlag{
			Type:  types.FlagDrawdown,
			Level: types.LevelHigh,
			Message: fmt.Sprintf("Max Drawdown is %.0f%% of Total Profit. Risk is high relative to return.",
				stats.MaxDrawdown/stats.NetProfit*100),
		})
	}

	return flags
}
