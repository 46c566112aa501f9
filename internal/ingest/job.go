// Package ingest turns raw source candidates into stored records: one
// job per source kind, each applying its normalization, domain filter
// and dedup before insert.
package ingest

import (
	"context"
	"time"
)

// Default poll intervals per source kind.
const (
	FilingInterval   = 10 * time.Minute
	TransferInterval = 30 * time.Second
	NewsInterval     = 5 * time.Minute
	MarketInterval   = 1 * time.Minute
)

// maxBatch bounds how many candidates a single poll will process.
const maxBatch = 10

// IngestResult summarizes one poll.
type IngestResult struct {
	Fetched    int
	Inserted   int
	Duplicates int
	Filtered   int
	Malformed  int
	// Failed is set when the source itself was unavailable. The job
	// stays scheduled and retries on its next tick.
	Failed bool
}

// Job is a periodic ingestion task. Poll never returns an error: source
// failures are contained in the result so that one bad poll cannot take
// the scheduler down.
type Job interface {
	Name() string
	Interval() time.Duration
	Poll(ctx context.Context) IngestResult
}

// capBatch truncates a candidate slice to the per-poll bound.
func capBatch[T any](candidates []T) []T {
	if len(candidates) > maxBatch {
		return candidates[:maxBatch]
	}
	return candidates
}
