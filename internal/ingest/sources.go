package ingest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FilingCandidate is a raw filing entry pulled from a filing feed.
type FilingCandidate struct {
	CompanyName string
	Title       string
	FilingURL   string
	RawSummary  string
	FiledAt     time.Time
}

// FilingSource provides raw filing candidates from an external feed.
type FilingSource interface {
	// Fetch returns the most recent filing candidates, newest first.
	Fetch(ctx context.Context) ([]*FilingCandidate, error)
}

// TransferCandidate is a raw token transfer observed on chain.
type TransferCandidate struct {
	TxHash       string
	From         string
	To           string
	TokenSymbol  string
	TokenAddress string
	Amount       decimal.Decimal // in whole token units
	PoolAddress  *string
	Tradeable    bool
	ObservedAt   time.Time
}

// TransferSource provides observed transfers from an external collaborator.
type TransferSource interface {
	// Fetch returns transfers observed since the previous call.
	Fetch(ctx context.Context) ([]*TransferCandidate, error)
}

// ArticleCandidate is a raw feed entry from a news source.
type ArticleCandidate struct {
	Title      string
	URL        string
	RawSummary string
	FeedURL    string
	// Published is the raw date string from the feed; parsing falls back
	// through RFC1123Z then RFC3339 before giving up to time.Now().
	Published string
}

// ArticleSource provides raw news feed entries.
type ArticleSource interface {
	// Fetch returns the most recent feed entries, newest first.
	Fetch(ctx context.Context) ([]*ArticleCandidate, error)
}

// QuoteCandidate is a market snapshot for one symbol.
type QuoteCandidate struct {
	Symbol    string
	Price     decimal.Decimal
	Change24h float64
	Volume24h float64
}

// QuoteSource provides market snapshots for a set of symbols.
type QuoteSource interface {
	// Fetch returns a snapshot per tracked symbol.
	Fetch(ctx context.Context) ([]*QuoteCandidate, error)
}
