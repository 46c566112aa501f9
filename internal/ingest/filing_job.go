package ingest

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/extract"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// minFilingAmount drops filings below the alert-worthy floor.
var minFilingAmount = decimal.NewFromInt(1_000_000)

// FilingEventPublisher emits stored-filing events.
type FilingEventPublisher interface {
	PublishFilingStored(ctx context.Context, f *domain.Filing) error
}

// FilingJob ingests private-placement filings from a filing feed.
type FilingJob struct {
	source   FilingSource
	store    storage.FilingStore
	amounts  extract.AmountExtractor
	sectors  extract.SectorExtractor
	events   FilingEventPublisher
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// FilingJobOptions configures a FilingJob.
type FilingJobOptions struct {
	Source   FilingSource
	Store    storage.FilingStore
	Amounts  extract.AmountExtractor // default: RegexAmount
	Sectors  extract.SectorExtractor // default: KeywordSector
	Events   FilingEventPublisher    // optional
	Interval time.Duration           // default: FilingInterval
	Logger   *log.Logger
	Now      func() time.Time
}

// NewFilingJob creates a filing ingestion job.
func NewFilingJob(opts FilingJobOptions) *FilingJob {
	amounts := opts.Amounts
	if amounts == nil {
		amounts = extract.NewRegexAmount()
	}
	sectors := opts.Sectors
	if sectors == nil {
		sectors = extract.NewKeywordSector()
	}
	interval := opts.Interval
	if interval == 0 {
		interval = FilingInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &FilingJob{
		source:   opts.Source,
		store:    opts.Store,
		amounts:  amounts,
		sectors:  sectors,
		events:   opts.Events,
		interval: interval,
		logger:   logger,
		now:      now,
	}
}

func (j *FilingJob) Name() string            { return "filings" }
func (j *FilingJob) Interval() time.Duration { return j.interval }

// Poll fetches the latest filings, keeps those at or above the amount
// floor, and inserts the survivors.
func (j *FilingJob) Poll(ctx context.Context) IngestResult {
	var res IngestResult

	candidates, err := j.source.Fetch(ctx)
	if err != nil {
		j.logger.Printf("[filings] source fetch failed: %v", err)
		res.Failed = true
		return res
	}
	candidates = capBatch(candidates)
	res.Fetched = len(candidates)

	for _, c := range candidates {
		if c.FilingURL == "" || (c.CompanyName == "" && c.Title == "") {
			res.Malformed++
			continue
		}

		text := c.Title + " " + c.RawSummary
		amount, ok := j.amounts.Extract(text)
		if !ok || amount.LessThan(minFilingAmount) {
			res.Filtered++
			continue
		}

		company := c.CompanyName
		if company == "" {
			company = c.Title
		}
		filedAt := c.FiledAt
		if filedAt.IsZero() {
			filedAt = j.now().UTC()
		}

		filing := &domain.Filing{
			CompanyName:  company,
			AmountRaised: amount,
			FilingURL:    c.FilingURL,
			Sector:       j.sectors.Extract(text),
			FiledAt:      filedAt,
			Premium:      true,
		}
		if err := j.store.Insert(ctx, filing); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				res.Duplicates++
				continue
			}
			j.logger.Printf("[filings] insert failed for %s: %v", c.FilingURL, err)
			res.Malformed++
			continue
		}
		res.Inserted++

		if j.events != nil {
			if err := j.events.PublishFilingStored(ctx, filing); err != nil {
				j.logger.Printf("[filings] publish failed for %s: %v", filing.FilingURL, err)
			}
		}
	}

	return res
}

var _ Job = (*FilingJob)(nil)
