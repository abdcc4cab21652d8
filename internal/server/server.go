// Package server exposes the analytics core over HTTP. Handlers own input
// validation; all silent-recovery policies (skipped rows, unparseable
// timestamps) live in the analytics layer and never surface as HTTP errors.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ea-sentinel/internal/analytics"
	"ea-sentinel/internal/interfaces"
	"ea-sentinel/internal/logger"
	"ea-sentinel/internal/reportlog"
	"ea-sentinel/internal/trace"
	"ea-sentinel/internal/types"
)

type Server struct {
	history     interfaces.HistorySource
	commentator interfaces.Commentator
	archive     *reportlog.Log
}

func New(history interfaces.HistorySource, commentator interfaces.Commentator, archive *reportlog.Log) *Server {
	return &Server{history: history, commentator: commentator, archive: archive}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/analyze/csv", s.analyzeCSV)
		api.POST("/analyze/trades", s.analyzeTrades)
		api.POST("/analyze/myfxbook", s.analyzeMyfxbook)
	}
	return r
}

// Empty CSV input is not an error: the engines define a zero-value result
// for it, so only malformed JSON produces a 400 here.
type analyzeCSVRequest struct {
	CSV        string `json:"csv"`
	Commentary bool   `json:"commentary"`
}

func (s *Server) analyzeCSV(c *gin.Context) {
	var req analyzeCSVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := trace.StartSpan(c.Request.Context(), "analyze-csv")
	defer span.End()

	trades, skipped := analytics.ParseCSV(req.CSV)
	report := analytics.Analyze(trades, "csv", len(skipped))
	s.finish(c, ctx, report, req.Commentary)
}

type analyzeTradesRequest struct {
	Trades     []types.HistoryRecord `json:"trades"`
	Commentary bool                  `json:"commentary"`
}

func (s *Server) analyzeTrades(c *gin.Context) {
	var req analyzeTradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// A missing trades field is a wrong input shape; an empty array is a
	// legitimate empty batch.
	if req.Trades == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trades is required"})
		return
	}

	ctx, span := trace.StartSpan(c.Request.Context(), "analyze-trades")
	defer span.End()

	trades := analytics.ConvertHistory(analytics.ClosedTrades(req.Trades))
	report := analytics.Analyze(trades, "trades", 0)
	s.finish(c, ctx, report, req.Commentary)
}

type analyzeMyfxbookRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	AccountID  int    `json:"accountId" binding:"required"`
	Commentary bool   `json:"commentary"`
}

func (s *Server) analyzeMyfxbook(c *gin.Context) {
	var req analyzeMyfxbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "broker proxy not configured"})
		return
	}

	ctx, span := trace.StartSpan(c.Request.Context(), "analyze-myfxbook")
	defer span.End()

	session, err := s.history.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.ErrorWithErr(ctx, "Myfxbook login failed", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	records, err := s.history.History(ctx, session, req.AccountID)
	if err != nil {
		logger.ErrorWithErr(ctx, "Myfxbook history fetch failed", err, "account_id", req.AccountID)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	trades := analytics.ConvertHistory(analytics.ClosedTrades(records))
	report := analytics.Analyze(trades, "myfxbook", 0)
	s.finish(c, ctx, report, req.Commentary)
}

// finish optionally attaches commentary, archives the report, and responds.
func (s *Server) finish(c *gin.Context, ctx context.Context, report types.AnalysisReport, wantCommentary bool) {
	if wantCommentary && s.commentator != nil {
		text, err := s.commentator.Comment(ctx, report)
		if err != nil {
			// Commentary is best-effort; the report is still valid without it.
			logger.Warn(ctx, "Commentary generation failed", "error", err)
		} else {
			report.Commentary = text
		}
	}

	if s.archive != nil {
		if err := s.archive.Append(report); err != nil {
			logger.Warn(ctx, "Failed to archive report", "error", err)
		}
	}

	logger.Report(ctx, report.Source, report.TradeCount, report.SkippedRows, len(report.RiskFlags))
	c.JSON(http.StatusOK, report)
}
