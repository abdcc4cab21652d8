package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"ea-sentinel/internal/types"
)

// SkippedRow records why a data row was rejected during CSV ingestion.
// Callers that only want the happy path can ignore the slice.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseCSV converts a delimited trade-log blob into the canonical trade
// sequence. Expected header: Time,Type,Lot,Symbol,OpenPrice,ClosePrice,Profit.
// The 5-column degraded form (no prices) is accepted; the last field on a line
// is always the profit. Rows with fewer than 5 fields or an unparseable profit
// are skipped, everything else defaults per field. Trade IDs are the 1-based
// data-line index, so a skipped row leaves a gap.
func ParseCSV(text string) ([]types.Trade, []SkippedRow) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, nil
	}

	trades := make([]types.Trade, 0, len(lines)-1)
	var skipped []SkippedRow
	var cumulative float64

	for i := 1; i < len(lines); i++ {
		parts := strings.Split(lines[i], ",")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		if len(parts) < 5 {
			skipped = append(skipped, SkippedRow{Line: i, Reason: "fewer than 5 fields"})
			continue
		}

		// Profit is the only field whose absence disqualifies a row.
		profit, err := strconv.ParseFloat(parts[len(parts)-1], 64)
		if err != nil || math.IsNaN(profit) {
			skipped = append(skipped, SkippedRow{Line: i, Reason: "unparseable profit"})
			continue
		}

		var openPrice, closePrice float64
		if len(parts) >= 7 {
			openPrice = floatOrZero(parts[4])
			closePrice = floatOrZero(parts[5])
		}

		cumulative += profit
		trades = append(trades, types.Trade{
			ID:               i,
			Time:             parts[0],
			Type:             parts[1],
			Lot:              floatOrZero(parts[2]),
			Symbol:           parts[3],
			OpenPrice:        openPrice,
			ClosePrice:       closePrice,
			Profit:           profit,
			CumulativeProfit: cumulative,
		})
	}

	return trades, skipped
}

// ConvertHistory normalizes broker history records into the canonical trade
// sequence. Brokers do not guarantee order, and the equity curve and
// streak/drawdown figures are order-sensitive, so a defensive copy is sorted
// by parsed open time before IDs and cumulative profit are assigned. Records
// whose open time fails to parse sort first (time zero). This path does not
// drop records; filter deposits/withdrawals with ClosedTrades beforehand.
func ConvertHistory(records []types.HistoryRecord) []types.Trade {
	sorted := make([]types.HistoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := ParseTradeTime(sorted[i].OpenTime)
		tj, _ := ParseTradeTime(sorted[j].OpenTime)
		return ti.Before(tj)
	})

	trades := make([]types.Trade, 0, len(sorted))
	var cumulative float64
	for i, h := range sorted {
		profit := h.Profit.Float64()
		cumulative += profit
		trades = append(trades, types.Trade{
			ID:               i + 1,
			Time:             h.OpenTime,
			Type:             h.Action,
			Lot:              h.Sizing.Value.Float64(),
			Symbol:           h.Symbol,
			OpenPrice:        h.OpenPrice,
			ClosePrice:       h.ClosePrice,
			Profit:           profit,
			CumulativeProfit: cumulative,
		})
	}
	return trades
}

// ClosedTrades drops history records that are balance operations rather than
// closed positions, satisfying the ConvertHistory precondition.
func ClosedTrades(records []types.HistoryRecord) []types.HistoryRecord {
	out := make([]types.HistoryRecord, 0, len(records))
	for _, h := range records {
		switch strings.ToLower(h.Action) {
		case "deposit", "withdrawal", "credit":
			continue
		}
		out = append(out, h)
	}
	return out
}

func floatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}
