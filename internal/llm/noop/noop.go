package noop

import (
	"context"

	"ea-sentinel/internal/logger"
	"ea-sentinel/internal/types"
)

// Commentator is the fallback used when no LLM provider is configured.
type Commentator struct{}

func NewCommentator() *Commentator {
	return &Commentator{}
}

func (c *Commentator) Comment(ctx context.Context, report types.AnalysisReport) (string, error) {
	logger.Debug(ctx, "Noop commentator called", "trades", report.TradeCount)
	return "", nil
}
