package ingest

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/resolver"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// DefaultTransferThresholds is the minimum alert-worthy amount per token
// symbol, in whole token units. Transfers of untracked tokens are dropped.
var DefaultTransferThresholds = map[string]decimal.Decimal{
	"USDC": decimal.NewFromInt(1_000_000),
	"ETH":  decimal.NewFromInt(100),
}

// AlertEventPublisher emits stored-alert events.
type AlertEventPublisher interface {
	PublishAlertStored(ctx context.Context, a *domain.TransferAlert) error
}

// TransferJob turns observed large transfers into stored alerts.
// Sender and receiver labels are resolved once here and frozen into the
// row; they are never re-derived on read.
type TransferJob struct {
	source     TransferSource
	store      storage.TransferAlertStore
	resolver   *resolver.AddressResolver
	thresholds map[string]decimal.Decimal
	events     AlertEventPublisher
	interval   time.Duration
	logger     *log.Logger
	now        func() time.Time
}

// TransferJobOptions configures a TransferJob.
type TransferJobOptions struct {
	Source     TransferSource
	Store      storage.TransferAlertStore
	Resolver   *resolver.AddressResolver
	Thresholds map[string]decimal.Decimal // default: DefaultTransferThresholds
	Events     AlertEventPublisher        // optional
	Interval   time.Duration              // default: TransferInterval
	Logger     *log.Logger
	Now        func() time.Time
}

// NewTransferJob creates a transfer ingestion job.
func NewTransferJob(opts TransferJobOptions) *TransferJob {
	thresholds := opts.Thresholds
	if thresholds == nil {
		thresholds = DefaultTransferThresholds
	}
	interval := opts.Interval
	if interval == 0 {
		interval = TransferInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &TransferJob{
		source:     opts.Source,
		store:      opts.Store,
		resolver:   opts.Resolver,
		thresholds: thresholds,
		events:     opts.Events,
		interval:   interval,
		logger:     logger,
		now:        now,
	}
}

func (j *TransferJob) Name() string            { return "transfers" }
func (j *TransferJob) Interval() time.Duration { return j.interval }

// Poll fetches observed transfers, keeps those at or above their token's
// threshold, resolves address labels and inserts the alerts.
func (j *TransferJob) Poll(ctx context.Context) IngestResult {
	var res IngestResult

	candidates, err := j.source.Fetch(ctx)
	if err != nil {
		j.logger.Printf("[transfers] source fetch failed: %v", err)
		res.Failed = true
		return res
	}
	candidates = capBatch(candidates)
	res.Fetched = len(candidates)

	for _, c := range candidates {
		if c.TxHash == "" || c.From == "" || c.To == "" {
			res.Malformed++
			continue
		}

		threshold, tracked := j.thresholds[c.TokenSymbol]
		if !tracked || c.Amount.LessThan(threshold) {
			res.Filtered++
			continue
		}

		observedAt := c.ObservedAt
		if observedAt.IsZero() {
			observedAt = j.now().UTC()
		}

		alert := &domain.TransferAlert{
			TxHash:          c.TxHash,
			SenderAddress:   c.From,
			SenderLabel:     j.resolver.Label(ctx, c.From),
			ReceiverAddress: c.To,
			ReceiverLabel:   j.resolver.Label(ctx, c.To),
			TokenSymbol:     c.TokenSymbol,
			TokenAddress:    c.TokenAddress,
			Amount:          c.Amount,
			PoolAddress:     c.PoolAddress,
			Tradeable:       c.Tradeable,
			ObservedAt:      observedAt,
			Premium:         true,
		}
		if err := j.store.Insert(ctx, alert); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				res.Duplicates++
				continue
			}
			j.logger.Printf("[transfers] insert failed for %s: %v", c.TxHash, err)
			res.Malformed++
			continue
		}
		res.Inserted++

		if j.events != nil {
			if err := j.events.PublishAlertStored(ctx, alert); err != nil {
				j.logger.Printf("[transfers] publish failed for %s: %v", alert.TxHash, err)
			}
		}
	}

	return res
}

var _ Job = (*TransferJob)(nil)
