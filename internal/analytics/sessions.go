package analytics

import (
	"sort"
	"time"

	"ea-sentinel/internal/types"
)

// Formats trade timestamps commonly arrive in: MT4-style dotted dates,
// ISO-ish dates, RFC3339 from broker APIs, and US slashed dates.
var tradeTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	time.RFC3339,
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// ParseTradeTime parses a trade timestamp against the known formats.
// The boolean reports whether any format matched.
func ParseTradeTime(s string) (time.Time, bool) {
	for _, layout := range tradeTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Session bucket boundaries by hour of day, half-open: [0,8) Asia,
// [8,16) London, [16,24) NY. A fixed heuristic, no timezone normalization.
const (
	londonOpenHour = 8
	nyOpenHour     = 16
)

// Sessions buckets trades by open-time hour and aggregates per-bucket
// performance. Trades with an unparseable time are excluded from every
// bucket. Note the win definition here is strict (profit > 0), unlike the
// overall win rate; the asymmetry is intentional and load-bearing.
func Sessions(trades []types.Trade) []types.SessionStats {
	type bucket struct {
		name   string
		count  int
		profit float64
		wins   int
	}
	buckets := [3]bucket{{name: "Asia"}, {name: "London"}, {name: "NY"}}

	for _, t := range trades {
		ts, ok := ParseTradeTime(t.Time)
		if !ok {
			continue
		}
		idx := 2
		switch hour := ts.Hour(); {
		case hour < londonOpenHour:
			idx = 0
		case hour < nyOpenHour:
			idx = 1
		}
		buckets[idx].count++
		buckets[idx].profit += t.Profit
		if t.Profit > 0 {
			buckets[idx].wins++
		}
	}

	out := make([]types.SessionStats, 0, len(buckets))
	for _, b := range buckets {
		s := types.SessionStats{Session: b.name, Count: b.count, TotalProfit: b.profit}
		if b.count > 0 {
			s.AvgProfit = b.profit / float64(b.count)
			s.WinRate = float64(b.wins) / float64(b.count) * 100
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalProfit > out[j].TotalProfit
	})
	return out
}
