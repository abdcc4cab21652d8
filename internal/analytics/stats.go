// Package analytics is the pure computation core: it turns an ordered trade
// sequence into summary statistics, risk flags, and session breakdowns. All
// functions are deterministic, allocate fresh output, and never mutate input.
package analytics

import (
	"math"

	"ea-sentinel/internal/types"
)

// Win/loss classification: profit >= 0 counts as a win, including break-even
// trades. Session win rates use the strict form, see sessions.go.
func isWin(profit float64) bool { return profit >= 0 }

type runKind int

const (
	runNone runKind = iota
	runWin
	runLoss
)

// streakTracker is a two-state run-length machine over the win/loss
// classification of consecutive trades.
type streakTracker struct {
	kind               runKind
	length             int
	maxWins, maxLosses int
}

func (s *streakTracker) observe(win bool) {
	next := runLoss
	if win {
		next = runWin
	}
	if next == s.kind {
		s.length++
	} else {
		s.kind = next
		s.length = 1
	}
	if s.kind == runWin && s.length > s.maxWins {
		s.maxWins = s.length
	}
	if s.kind == runLoss && s.length > s.maxLosses {
		s.maxLosses = s.length
	}
}

// Calculate aggregates a trade sequence into TradeStats in a single pass.
// An empty sequence yields the zero value, never an error.
func Calculate(trades []types.Trade) types.TradeStats {
	if len(trades) == 0 {
		return types.TradeStats{}
	}

	var (
		wins        int
		grossProfit float64
		grossLoss   float64
		maxDD       float64
		peak        = math.Inf(-1)
		streak      streakTracker
	)

	for _, t := range trades {
		win := isWin(t.Profit)
		if win {
			wins++
			grossProfit += t.Profit
		} else {
			grossLoss += -t.Profit
		}
		streak.observe(win)

		if t.CumulativeProfit > peak {
			peak = t.CumulativeProfit
		}
		if dd := peak - t.CumulativeProfit; dd > maxDD {
			maxDD = dd
		}
	}

	total := len(trades)
	losses := total - wins

	// Degenerate case: with no losing trades the factor is gross profit
	// itself rather than a ratio. Downstream display relies on this.
	profitFactor := grossProfit
	if grossLoss != 0 {
		profitFactor = grossProfit / grossLoss
	}

	avgWin := 0.0
	if wins > 0 {
		avgWin = grossProfit / float64(wins)
	}
	avgLoss := 0.0
	if losses > 0 {
		avgLoss = grossLoss / float64(losses)
	}

	return types.TradeStats{
		TotalTrades:       total,
		NetProfit:         trades[total-1].CumulativeProfit,
		WinRate:           float64(wins) / float64(total) * 100,
		ProfitFactor:      profitFactor,
		MaxDrawdown:       maxDD,
		AvgWin:            avgWin,
		AvgLoss:           avgLoss,
		ConsecutiveWins:   streak.maxWins,
		ConsecutiveLosses: streak.maxLosses,
	}
}
