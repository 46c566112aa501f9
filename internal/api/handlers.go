package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
	"github.com/AmrendraTheCoder/microTerm/internal/summary"
	"github.com/AmrendraTheCoder/microTerm/internal/unlock"
)

func queryLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return defaultRecentLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 200 {
		return defaultRecentLimit
	}
	return limit
}

func (s *Server) handleDeals(c *gin.Context) {
	rows, err := s.filings.Recent(c.Request.Context(), queryLimit(c))
	if err != nil {
		s.logger.Printf("[api] list deals failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": rows, "count": len(rows)})
}

func (s *Server) handleAlerts(c *gin.Context) {
	rows, err := s.alerts.Recent(c.Request.Context(), queryLimit(c))
	if err != nil {
		s.logger.Printf("[api] list alerts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": rows, "count": len(rows)})
}

func (s *Server) handleNews(c *gin.Context) {
	rows, err := s.articles.Recent(c.Request.Context(), queryLimit(c))
	if err != nil {
		s.logger.Printf("[api] list news failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": rows, "count": len(rows)})
}

func (s *Server) handleMarket(c *gin.Context) {
	rows, err := s.quotes.All(c.Request.Context())
	if err != nil {
		s.logger.Printf("[api] market snapshot failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": rows})
}

func (s *Server) handleLoyalty(c *gin.Context) {
	wallet := c.Param("wallet")
	stats, err := s.loyalty.Stats(c.Request.Context(), wallet)
	if err != nil {
		s.logger.Printf("[api] loyalty stats failed for %s: %v", wallet, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet":         wallet,
		"balance":        stats.Balance,
		"totalEarned":    stats.TotalEarned,
		"totalSpent":     stats.TotalSpent,
		"tier":           stats.Tier.Name,
		"benefits":       stats.Tier.Benefits,
		"nextTier":       stats.Tier.NextTier,
		"canFreeUnlock":  stats.CanFreeUnlock,
		"nextFreeUnlock": stats.NextFreeUnlock,
	})
}

type unlockRequest struct {
	UserWallet string `json:"userWallet" binding:"required"`
	ItemKind   string `json:"itemKind" binding:"required"`
	ItemID     int64  `json:"itemId" binding:"required"`
	Mode       string `json:"mode"`
	TxHash     string `json:"txHash"`
}

func (s *Server) handleUnlock(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := unlock.Mode(req.Mode)
	if mode == "" {
		mode = unlock.ModePaid
	}

	result, err := s.unlocks.RequestAccess(c.Request.Context(), unlock.Request{
		UserWallet: req.UserWallet,
		ItemKind:   domain.ItemKind(req.ItemKind),
		ItemID:     req.ItemID,
		Mode:       mode,
		TxHash:     req.TxHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Printf("[api] unlock failed for %s: %v", req.UserWallet, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unlock failed"})
		return
	}

	if s.metrics != nil {
		s.metrics.UnlockRequests.WithLabelValues(string(mode), string(result.Decision)).Inc()
	}

	resp := gin.H{"decision": result.Decision}
	if result.Receipt != nil {
		resp["receiptTokenId"] = result.Receipt.TokenID
	}
	c.JSON(http.StatusOK, resp)
}

type agentParseRequest struct {
	Command    string `json:"command" binding:"required"`
	UserWallet string `json:"userWallet"`
}

func (s *Server) handleAgentParse(c *gin.Context) {
	var req agentParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := s.parser.Parse(req.Command)

	if req.UserWallet != "" {
		action := domain.AgentAction{
			ID:         uuid.NewString(),
			UserWallet: req.UserWallet,
			ActionType: cmd.Action,
			Success:    cmd.Action != "unknown",
		}
		if cmd.ItemType.Valid() {
			kind := cmd.ItemType
			action.ItemKind = &kind
		}
		if cmd.Cost != nil {
			action.Cost = *cmd.Cost
		}
		s.unlocks.RecordAgentAction(c.Request.Context(), action)
	}

	c.JSON(http.StatusOK, gin.H{
		"command": cmd,
		"input":   req.Command,
	})
}

type summarizeRequest struct {
	ItemKind string `json:"itemKind" binding:"required"`
	ItemID   int64  `json:"itemId" binding:"required"`
}

func (s *Server) handleSummarize(c *gin.Context) {
	if s.summaries == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "summaries disabled"})
		return
	}

	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := domain.ItemKind(req.ItemKind)
	sumReq := summary.Request{Kind: kind, ItemID: req.ItemID}

	ctx := c.Request.Context()
	var err error
	switch kind {
	case domain.KindDeal:
		sumReq.Filing, err = s.filings.GetByID(ctx, req.ItemID)
	case domain.KindAlert:
		sumReq.Alert, err = s.alerts.GetByID(ctx, req.ItemID)
	case domain.KindNews:
		sumReq.Article, err = s.articles.GetByID(ctx, req.ItemID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown item kind"})
		return
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		s.logger.Printf("[api] summarize lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	text, err := s.summaries.Summarize(ctx, sumReq)
	if err != nil {
		s.logger.Printf("[api] summarize failed for %s/%d: %v", kind, req.ItemID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"itemKind": kind,
		"itemId":   req.ItemID,
		"summary":  text,
	})
}
