// Package scheduler drives ingestion jobs: an initial synchronous pass
// in registration order, then one goroutine per job on its own ticker.
// Jobs communicate only through the stores, so a failing job cannot
// take down its peers.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/ingest"
	"github.com/AmrendraTheCoder/microTerm/internal/observability"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// defaultPacingDelay spaces out the initial pass so sources are not hit
// in a burst at startup.
const defaultPacingDelay = 2 * time.Second

// Scheduler runs a fixed set of ingestion jobs until its context is
// cancelled.
type Scheduler struct {
	jobs        []ingest.Job
	runs        storage.IngestRunStore // optional
	metrics     *observability.Metrics // optional
	pacingDelay time.Duration
	logger      *log.Logger
	now         func() time.Time
}

// Options configures a Scheduler.
type Options struct {
	Jobs        []ingest.Job
	Runs        storage.IngestRunStore // optional poll analytics
	Metrics     *observability.Metrics // optional
	PacingDelay time.Duration          // default: 2s between initial-pass jobs
	Logger      *log.Logger
	Now         func() time.Time
}

// New creates a new Scheduler.
func New(opts Options) *Scheduler {
	pacingDelay := opts.PacingDelay
	if pacingDelay == 0 {
		pacingDelay = defaultPacingDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		jobs:        opts.Jobs,
		runs:        opts.Runs,
		metrics:     opts.Metrics,
		pacingDelay: pacingDelay,
		logger:      logger,
		now:         now,
	}
}

// Run executes the initial pass, starts the per-job tickers and blocks
// until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Printf("[scheduler] starting %d jobs", len(s.jobs))

	// Initial pass: synchronous, registration order, paced.
	for i, job := range s.jobs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.runJob(ctx, job)

		if i < len(s.jobs)-1 {
			select {
			case <-time.After(s.pacingDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func(job ingest.Job) {
			defer wg.Done()
			s.loop(ctx, job)
		}(job)
	}
	wg.Wait()

	s.logger.Println("[scheduler] stopped")
	return ctx.Err()
}

// loop polls one job on its interval. Poll runs inline on the ticker
// goroutine, so a slow poll cannot overlap itself; ticks that fire while
// a poll is in flight are dropped, not queued.
func (s *Scheduler) loop(ctx context.Context, job ingest.Job) {
	ticker := time.NewTicker(job.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, job)
		}
	}
}

// runJob executes one poll and records its outcome. A failed poll is
// logged; the job stays eligible for its next tick.
func (s *Scheduler) runJob(ctx context.Context, job ingest.Job) {
	started := s.now().UTC()
	res := job.Poll(ctx)
	elapsed := s.now().UTC().Sub(started)

	if res.Failed {
		s.logger.Printf("[scheduler] %s poll failed (retrying next tick)", job.Name())
	} else {
		s.logger.Printf("[scheduler] %s: fetched=%d inserted=%d duplicates=%d filtered=%d malformed=%d",
			job.Name(), res.Fetched, res.Inserted, res.Duplicates, res.Filtered, res.Malformed)
	}

	if s.metrics != nil {
		name := job.Name()
		s.metrics.CandidatesFetched.WithLabelValues(name).Add(float64(res.Fetched))
		s.metrics.RecordsInserted.WithLabelValues(name).Add(float64(res.Inserted))
		s.metrics.DuplicatesSkipped.WithLabelValues(name).Add(float64(res.Duplicates))
		s.metrics.CandidatesFiltered.WithLabelValues(name).Add(float64(res.Filtered))
		s.metrics.MalformedSkipped.WithLabelValues(name).Add(float64(res.Malformed))
		s.metrics.PollDuration.WithLabelValues(name).Observe(elapsed.Seconds())
		if res.Failed {
			s.metrics.SourceFailures.WithLabelValues(name).Inc()
		} else {
			s.metrics.LastSuccessfulPoll.WithLabelValues(name).Set(float64(started.Unix()))
		}
	}

	if s.runs == nil {
		return
	}
	run := &domain.IngestRun{
		Job:        job.Name(),
		StartedAt:  started,
		DurationMs: elapsed.Milliseconds(),
		Fetched:    res.Fetched,
		Inserted:   res.Inserted,
		Duplicates: res.Duplicates,
		Filtered:   res.Filtered,
		Malformed:  res.Malformed,
		Failed:     res.Failed,
	}
	if err := s.runs.Insert(ctx, run); err != nil {
		s.logger.Printf("[scheduler] recording %s run failed: %v", job.Name(), err)
	}
}
