package prompt

import (
	"strings"
	"testing"

	"ea-sentinel/internal/types"
)

func TestBuildCitesFigures(t *testing.T) {
	report := types.AnalysisReport{
		Source:     "csv",
		TradeCount: 42,
		Stats: types.TradeStats{
			NetProfit:         123.45,
			WinRate:           61.9,
			ProfitFactor:      1.8,
			MaxDrawdown:       77.7,
			ConsecutiveWins:   4,
			ConsecutiveLosses: 3,
		},
		RiskFlags: []types.RiskFlag{
			{Type: types.FlagDrawdown, Level: types.LevelHigh, Message: "Max Drawdown is 63% of Total Profit. Risk is high relative to return."},
		},
		Sessions: []types.SessionStats{
			{Session: "London", Count: 20, TotalProfit: 90, WinRate: 65},
		},
	}

	p := Build(report)
	for _, want := range []string{"42 trades", "123.45", "61.9%", "77.70", "drawdown/high", "London: 20 trades"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	p := Build(types.AnalysisReport{Source: "csv"})
	if strings.Contains(p, "Risk flags") || strings.Contains(p, "Session breakdown") {
		t.Errorf("empty sections should be omitted:\n%s", p)
	}
}
