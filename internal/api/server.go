// Package api exposes the terminal's HTTP surface: recent records,
// market snapshot, loyalty stats, access requests, agent command
// parsing and AI summaries.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AmrendraTheCoder/microTerm/internal/agent"
	"github.com/AmrendraTheCoder/microTerm/internal/ledger"
	"github.com/AmrendraTheCoder/microTerm/internal/observability"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
	"github.com/AmrendraTheCoder/microTerm/internal/summary"
	"github.com/AmrendraTheCoder/microTerm/internal/unlock"
)

// defaultRecentLimit bounds list endpoints when no limit is given.
const defaultRecentLimit = 50

// Server wires the HTTP handlers to their services.
type Server struct {
	filings   storage.FilingStore
	alerts    storage.TransferAlertStore
	articles  storage.ArticleStore
	quotes    storage.QuoteStore
	loyalty   *ledger.Service
	unlocks   *unlock.Service
	summaries *summary.Service
	parser    *agent.Parser
	metrics   *observability.Metrics
	logger    *log.Logger
	startedAt time.Time
}

// Options configures a Server. Summaries and Metrics are optional.
type Options struct {
	Filings   storage.FilingStore
	Alerts    storage.TransferAlertStore
	Articles  storage.ArticleStore
	Quotes    storage.QuoteStore
	Loyalty   *ledger.Service
	Unlocks   *unlock.Service
	Summaries *summary.Service
	Metrics   *observability.Metrics
	Logger    *log.Logger
}

// NewServer creates an API server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		filings:   opts.Filings,
		alerts:    opts.Alerts,
		articles:  opts.Articles,
		quotes:    opts.Quotes,
		loyalty:   opts.Loyalty,
		unlocks:   opts.Unlocks,
		summaries: opts.Summaries,
		parser:    agent.NewParser(),
		metrics:   opts.Metrics,
		logger:    logger,
		startedAt: time.Now().UTC(),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", s.handleHealth)
	r.GET("/status", s.handleStatus)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/deals", s.handleDeals)
		apiGroup.GET("/alerts", s.handleAlerts)
		apiGroup.GET("/news", s.handleNews)
		apiGroup.GET("/market", s.handleMarket)
		apiGroup.GET("/loyalty/:wallet", s.handleLoyalty)
		apiGroup.POST("/unlock", s.handleUnlock)
		apiGroup.POST("/agent/parse", s.handleAgentParse)
		apiGroup.POST("/summarize", s.handleSummarize)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	})
}
