package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/ledger"
	"github.com/AmrendraTheCoder/microTerm/internal/storage/memory"
	"github.com/AmrendraTheCoder/microTerm/internal/summary"
	"github.com/AmrendraTheCoder/microTerm/internal/unlock"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.FilingStore, *ledger.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	filings := memory.NewFilingStore()
	alerts := memory.NewTransferAlertStore()
	articles := memory.NewArticleStore()
	quotes := memory.NewQuoteStore()

	gates := memory.NewGateUseStore()
	loyalty := ledger.New(ledger.Options{Store: memory.NewLedgerStore(gates)})

	unlocks := unlock.New(unlock.Options{
		Unlocks:  memory.NewUnlockStore(),
		Gates:    gates,
		Receipts: memory.NewNFTReceiptStore(),
		Actions:  memory.NewAgentActionStore(),
		Loyalty:  loyalty,
	})

	summaries := summary.NewService(summary.ServiceOptions{
		Summarizer: summary.NewTemplateSummarizer(),
	})

	srv := NewServer(Options{
		Filings:   filings,
		Alerts:    alerts,
		Articles:  articles,
		Quotes:    quotes,
		Loyalty:   loyalty,
		Unlocks:   unlocks,
		Summaries: summaries,
	})
	return srv.Router(nil), filings, loyalty
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthAndStatus(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDealsEndpoint(t *testing.T) {
	router, filings, _ := newTestRouter(t)

	require.NoError(t, filings.Insert(context.Background(), &domain.Filing{
		CompanyName:  "NeuralWorks",
		AmountRaised: decimal.NewFromInt(25_000_000),
		FilingURL:    "https://filings.example/neuralworks",
		Sector:       "AI/ML",
		FiledAt:      time.Now().UTC(),
		Premium:      true,
	}))

	w := doJSON(t, router, http.MethodGet, "/api/deals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestLoyaltyEndpoint(t *testing.T) {
	router, _, loyalty := newTestRouter(t)

	_, err := loyalty.Earn(context.Background(), "0xabc", 600)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/loyalty/0xabc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Balance int64  `json:"balance"`
		Tier    string `json:"tier"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(600), resp.Balance)
	assert.Equal(t, "Gold", resp.Tier)
}

func TestUnlockEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := map[string]any{
		"userWallet": "0xabc",
		"itemKind":   "deal",
		"itemId":     1,
		"mode":       "paid",
		"txHash":     "0xdeadbeef",
	}

	w := doJSON(t, router, http.MethodPost, "/api/unlock", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Decision string `json:"decision"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "granted", resp.Decision)

	// Repeat request is idempotent.
	w = doJSON(t, router, http.MethodPost, "/api/unlock", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "already_owned", resp.Decision)
}

func TestUnlockEndpointRejectsBadKind(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/unlock", map[string]any{
		"userWallet": "0xabc",
		"itemKind":   "poster",
		"itemId":     1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAgentParseEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/agent/parse", map[string]any{
		"command":    "auto-unlock all deals over $5m",
		"userWallet": "0xabc",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Command struct {
			Action string `json:"action"`
			Filter struct {
				Type      string `json:"type"`
				MinAmount int64  `json:"minAmount"`
			} `json:"filter"`
		} `json:"command"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "auto_unlock", resp.Command.Action)
	assert.Equal(t, "deal", resp.Command.Filter.Type)
	assert.Equal(t, int64(5_000_000), resp.Command.Filter.MinAmount)
}

func TestSummarizeEndpoint(t *testing.T) {
	router, filings, _ := newTestRouter(t)

	f := &domain.Filing{
		CompanyName:  "NeuralWorks",
		AmountRaised: decimal.NewFromInt(25_000_000),
		FilingURL:    "https://filings.example/neuralworks",
		Sector:       "AI/ML",
		FiledAt:      time.Now().UTC(),
	}
	require.NoError(t, filings.Insert(context.Background(), f))

	w := doJSON(t, router, http.MethodPost, "/api/summarize", map[string]any{
		"itemKind": "deal",
		"itemId":   f.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Summary, "NeuralWorks")

	w = doJSON(t, router, http.MethodPost, "/api/summarize", map[string]any{
		"itemKind": "deal",
		"itemId":   999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
