package ingest

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/extract"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// NewsJob ingests news articles from RSS-style feeds.
type NewsJob struct {
	source    ArticleSource
	store     storage.ArticleStore
	sentiment extract.SentimentClassifier
	interval  time.Duration
	logger    *log.Logger
	now       func() time.Time
}

// NewsJobOptions configures a NewsJob.
type NewsJobOptions struct {
	Source    ArticleSource
	Store     storage.ArticleStore
	Sentiment extract.SentimentClassifier // default: KeywordSentiment
	Interval  time.Duration               // default: NewsInterval
	Logger    *log.Logger
	Now       func() time.Time
}

// NewNewsJob creates a news ingestion job.
func NewNewsJob(opts NewsJobOptions) *NewsJob {
	sentiment := opts.Sentiment
	if sentiment == nil {
		sentiment = extract.NewKeywordSentiment()
	}
	interval := opts.Interval
	if interval == 0 {
		interval = NewsInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &NewsJob{
		source:    opts.Source,
		store:     opts.Store,
		sentiment: sentiment,
		interval:  interval,
		logger:    logger,
		now:       now,
	}
}

func (j *NewsJob) Name() string            { return "news" }
func (j *NewsJob) Interval() time.Duration { return j.interval }

// parsePublished resolves a feed date string, falling back through the
// formats feeds actually emit before giving up to the current time.
func (j *NewsJob) parsePublished(raw string) time.Time {
	if t, err := time.Parse(time.RFC1123Z, raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	return j.now().UTC()
}

// Poll fetches the latest feed entries, normalizes them and inserts the
// survivors.
func (j *NewsJob) Poll(ctx context.Context) IngestResult {
	var res IngestResult

	candidates, err := j.source.Fetch(ctx)
	if err != nil {
		j.logger.Printf("[news] source fetch failed: %v", err)
		res.Failed = true
		return res
	}
	candidates = capBatch(candidates)
	res.Fetched = len(candidates)

	for _, c := range candidates {
		if c.Title == "" || c.URL == "" {
			res.Malformed++
			continue
		}

		summary := extract.CleanSummary(c.RawSummary, c.Title)
		article := &domain.Article{
			Title:       c.Title,
			Summary:     summary,
			Sentiment:   j.sentiment.Classify(c.Title, summary),
			Source:      extract.SourceName(c.FeedURL),
			URL:         c.URL,
			PublishedAt: j.parsePublished(c.Published),
			Premium:     true,
		}
		if err := j.store.Insert(ctx, article); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				res.Duplicates++
				continue
			}
			j.logger.Printf("[news] insert failed for %s: %v", c.URL, err)
			res.Malformed++
			continue
		}
		res.Inserted++
	}

	return res
}

var _ Job = (*NewsJob)(nil)
