package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/news"
	"stock-sentiment/internal/pipeline"
	"stock-sentiment/internal/sentiment"
	"stock-sentiment/internal/types"
)

// Runner produces a ticker report; satisfied by *pipeline.Pipeline
type Runner interface {
	Run(ctx context.Context, ticker string) (types.TickerReport, error)
}

// Server exposes the analysis pipeline over HTTP
type Server struct {
	runner Runner
	engine *gin.Engine
}

type analyzeRequest struct {
	Ticker string `json:"ticker" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Machine-readable reason codes for failed analyses
const (
	CodeInvalidTicker   = "invalid_ticker"
	CodeNoArticles      = "no_articles_found"
	CodeAllFailed       = "all_classifications_failed"
	CodeInternalFailure = "internal_failure"
)

// New creates the HTTP server around a pipeline
func New(runner Runner, corsOrigins []string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	if len(corsOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	s := &Server{runner: runner, engine: engine}

	engine.POST("/analyze", s.analyze)
	engine.GET("/health", s.health)

	return s
}

// Handler returns the underlying HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: "ticker is required",
			Code:  CodeInvalidTicker,
		})
		return
	}

	logger.Info(c.Request.Context(), "Received analysis request", "ticker", req.Ticker)

	rep, err := s.runner.Run(c.Request.Context(), req.Ticker)
	if err != nil {
		status, code := classifyError(err)
		logger.ErrorWithErr(c.Request.Context(), "Analysis failed", err, "ticker", req.Ticker, "code", code)
		c.JSON(status, errorResponse{Error: err.Error(), Code: code})
		return
	}

	c.JSON(http.StatusOK, rep)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// classifyError maps pipeline failures to a response status and reason code
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidTicker):
		return http.StatusBadRequest, CodeInvalidTicker
	case errors.Is(err, news.ErrNoArticles):
		return http.StatusNotFound, CodeNoArticles
	case errors.Is(err, sentiment.ErrEmptyInput):
		return http.StatusBadGateway, CodeAllFailed
	default:
		return http.StatusInternalServerError, CodeInternalFailure
	}
}
