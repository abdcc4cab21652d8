package types

import (
	"bytes"
	"strconv"
	"time"
)

// Trade is one closed position. Constructed once during ingestion and never
// mutated afterward; a batch of trades is the unit of analysis.
type Trade struct {
	ID               int     `json:"id"`
	Time             string  `json:"time"`
	Type             string  `json:"type"`
	Lot              float64 `json:"lot"`
	Symbol           string  `json:"symbol"`
	OpenPrice        float64 `json:"openPrice"`
	ClosePrice       float64 `json:"closePrice"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulativeProfit"`
}

// TradeStats is the single-pass summary of one trade batch.
type TradeStats struct {
	TotalTrades       int     `json:"totalTrades"`
	NetProfit         float64 `json:"netProfit"`
	WinRate           float64 `json:"winRate"`
	ProfitFactor      float64 `json:"profitFactor"`
	MaxDrawdown       float64 `json:"maxDrawdown"`
	AvgWin            float64 `json:"avgWin"`
	AvgLoss           float64 `json:"avgLoss"`
	ConsecutiveWins   int     `json:"consecutiveWins"`
	ConsecutiveLosses int     `json:"consecutiveLosses"`
}

type FlagType string

const (
	FlagDrawdown FlagType = "drawdown"
	FlagStreak   FlagType = "streak"
	FlagEdge     FlagType = "edge"
	// FlagTiming is part of the taxonomy but no rule produces it yet.
	FlagTiming FlagType = "timing"
)

type FlagLevel string

const (
	LevelLow    FlagLevel = "low"
	LevelMedium FlagLevel = "medium"
	LevelHigh   FlagLevel = "high"
)

// RiskFlag is a qualitative warning derived from a trade batch and its stats.
type RiskFlag struct {
	Type    FlagType  `json:"type"`
	Level   FlagLevel `json:"level"`
	Message string    `json:"message"`
}

// SessionStats is per-bucket performance for one clock-hour trading session.
type SessionStats struct {
	Session     string  `json:"session"`
	Count       int     `json:"count"`
	TotalProfit float64 `json:"totalProfit"`
	AvgProfit   float64 `json:"avgProfit"`
	WinRate     float64 `json:"winRate"`
}

// FlexFloat tolerates broker payloads that encode numbers as either JSON
// numbers or quoted strings. Unparseable input decodes to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }

// Sizing mirrors the broker history "sizing" object.
type Sizing struct {
	Type  string    `json:"type"`
	Value FlexFloat `json:"value"`
}

// HistoryRecord is one raw broker history entry as returned by the proxy.
// Fields are optional and ragged; partiality stops at the ingestion boundary.
type HistoryRecord struct {
	OpenTime   string    `json:"openTime"`
	CloseTime  string    `json:"closeTime,omitempty"`
	Symbol     string    `json:"symbol"`
	Action     string    `json:"action"`
	Sizing     Sizing    `json:"sizing"`
	OpenPrice  float64   `json:"openPrice"`
	ClosePrice float64   `json:"closePrice"`
	TP         float64   `json:"tp,omitempty"`
	SL         float64   `json:"sl,omitempty"`
	Pips       float64   `json:"pips,omitempty"`
	Profit     FlexFloat `json:"profit"`
	Interest   float64   `json:"interest,omitempty"`
	Commission float64   `json:"commission,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	Magic      int64     `json:"magic,omitempty"`
}

// Account is the subset of broker account fields the analyzer surfaces.
type Account struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	AccountID    int     `json:"accountId,omitempty"`
	Balance      float64 `json:"balance"`
	Equity       float64 `json:"equity"`
	Profit       float64 `json:"profit"`
	Drawdown     float64 `json:"drawdown"`
	Demo         bool    `json:"demo"`
	Currency     string  `json:"currency"`
	ProfitFactor float64 `json:"profitFactor"`
	Broker       string  `json:"broker,omitempty"`
}

// AnalysisReport bundles the outputs of one analysis run.
type AnalysisReport struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Source      string         `json:"source"`
	TradeCount  int            `json:"tradeCount"`
	SkippedRows int            `json:"skippedRows,omitempty"`
	Stats       TradeStats     `json:"stats"`
	RiskFlags   []RiskFlag     `json:"riskFlags"`
	Sessions    []SessionStats `json:"sessions"`
	Commentary  string         `json:"commentary,omitempty"`
}
