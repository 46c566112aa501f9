package ingest

import (
	"context"
	"log"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// TrackedSymbols is the default market watchlist.
var TrackedSymbols = []string{"BTC", "ETH", "SOL", "NVDA", "COIN"}

// MarketJob refreshes the market snapshot. Quotes are the one record
// kind that is replaced rather than deduplicated, so every fetched
// candidate counts as Inserted.
type MarketJob struct {
	source   QuoteSource
	store    storage.QuoteStore
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// MarketJobOptions configures a MarketJob.
type MarketJobOptions struct {
	Source   QuoteSource
	Store    storage.QuoteStore
	Interval time.Duration // default: MarketInterval
	Logger   *log.Logger
	Now      func() time.Time
}

// NewMarketJob creates a market snapshot job.
func NewMarketJob(opts MarketJobOptions) *MarketJob {
	interval := opts.Interval
	if interval == 0 {
		interval = MarketInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &MarketJob{
		source:   opts.Source,
		store:    opts.Store,
		interval: interval,
		logger:   logger,
		now:      now,
	}
}

func (j *MarketJob) Name() string            { return "market" }
func (j *MarketJob) Interval() time.Duration { return j.interval }

// Poll fetches a snapshot per tracked symbol and upserts each quote.
func (j *MarketJob) Poll(ctx context.Context) IngestResult {
	var res IngestResult

	candidates, err := j.source.Fetch(ctx)
	if err != nil {
		j.logger.Printf("[market] source fetch failed: %v", err)
		res.Failed = true
		return res
	}
	res.Fetched = len(candidates)

	for _, c := range candidates {
		if c.Symbol == "" {
			res.Malformed++
			continue
		}
		quote := &domain.Quote{
			Symbol:    c.Symbol,
			Price:     c.Price,
			Change24h: c.Change24h,
			Volume24h: c.Volume24h,
			UpdatedAt: j.now().UTC(),
		}
		if err := j.store.Upsert(ctx, quote); err != nil {
			j.logger.Printf("[market] upsert failed for %s: %v", c.Symbol, err)
			res.Malformed++
			continue
		}
		res.Inserted++
	}

	return res
}

var _ Job = (*MarketJob)(nil)
