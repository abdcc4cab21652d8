package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ea-sentinel/internal/types"
)

// withCumulative builds a trade sequence from raw profits.
func withCumulative(profits ...float64) []types.Trade {
	trades := make([]types.Trade, len(profits))
	var cum float64
	for i, p := range profits {
		cum += p
		trades[i] = types.Trade{ID: i + 1, Profit: p, CumulativeProfit: cum}
	}
	return trades
}

func TestCalculateSampleBatch(t *testing.T) {
	trades, _ := ParseCSV(sampleCSV)
	stats := Calculate(trades)

	assert.Equal(t, 2, stats.TotalTrades)
	assert.Equal(t, -30.0, stats.NetProfit)
	assert.Equal(t, 50.0, stats.WinRate)
	assert.Equal(t, 1, stats.ConsecutiveWins)
	assert.Equal(t, 1, stats.ConsecutiveLosses)
	// Peak 50 at trade 1, trough -30 at trade 2.
	assert.Equal(t, 80.0, stats.MaxDrawdown)
	assert.Equal(t, 50.0, stats.AvgWin)
	assert.Equal(t, 80.0, stats.AvgLoss)
	assert.Equal(t, 50.0/80.0, stats.ProfitFactor)
}

func TestCalculateEmpty(t *testing.T) {
	assert.Equal(t, types.TradeStats{}, Calculate(nil))
	assert.Equal(t, types.TradeStats{}, Calculate([]types.Trade{}))
}

func TestCalculateNetProfitMatchesLastCumulative(t *testing.T) {
	trades := withCumulative(10, -4, 7, -1, -2)
	stats := Calculate(trades)
	assert.Equal(t, trades[len(trades)-1].CumulativeProfit, stats.NetProfit)
}

func TestCalculateProfitFactorDegenerateCase(t *testing.T) {
	// No losing trades: the factor is gross profit itself, not +Inf.
	stats := Calculate(withCumulative(10, 20, 30))
	assert.Equal(t, 60.0, stats.ProfitFactor)
	assert.Equal(t, 0.0, stats.AvgLoss)
	assert.Equal(t, 100.0, stats.WinRate)
}

func TestCalculateDrawdownNonNegative(t *testing.T) {
	// Monotonically non-decreasing curve has zero drawdown.
	stats := Calculate(withCumulative(5, 0, 10))
	assert.Equal(t, 0.0, stats.MaxDrawdown)

	// All-losing curve: peak is the first cumulative value.
	stats = Calculate(withCumulative(-10, -20, -30))
	assert.Equal(t, 50.0, stats.MaxDrawdown)
	assert.GreaterOrEqual(t, stats.MaxDrawdown, 0.0)
}

func TestCalculateStreaks(t *testing.T) {
	stats := Calculate(withCumulative(1, 2, -1, -1, -1, 4, -2))
	assert.Equal(t, 2, stats.ConsecutiveWins)
	assert.Equal(t, 3, stats.ConsecutiveLosses)
}

func TestCalculateZeroProfitCountsAsWin(t *testing.T) {
	// A break-even trade extends a win run and interrupts a loss run.
	stats := Calculate(withCumulative(5, 0, 3, -1, 0, -1))
	assert.Equal(t, 3, stats.ConsecutiveWins)
	assert.Equal(t, 1, stats.ConsecutiveLosses)
	// 4 of 6 classify as wins.
	assert.InDelta(t, 4.0/6.0*100, stats.WinRate, 1e-12)
}

func TestCalculateWinLossCountsPartitionTotal(t *testing.T) {
	trades := withCumulative(3, -1, 0, -2, 8, -4, 1)
	stats := Calculate(trades)
	wins := int(stats.WinRate/100*float64(stats.TotalTrades) + 0.5)
	losses := stats.TotalTrades - wins
	assert.Equal(t, len(trades), wins+losses)
}

func TestCalculateIdempotent(t *testing.T) {
	trades := withCumulative(12.5, -3.25, 0, 4.75, -9.5)
	assert.Equal(t, Calculate(trades), Calculate(trades))
}
