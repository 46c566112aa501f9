package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmrendraTheCoder/microTerm/internal/ingest"
	"github.com/AmrendraTheCoder/microTerm/internal/storage/memory"
)

type recordingJob struct {
	name     string
	interval time.Duration
	result   ingest.IngestResult

	mu    sync.Mutex
	polls []time.Time
}

func (j *recordingJob) Name() string            { return j.name }
func (j *recordingJob) Interval() time.Duration { return j.interval }

func (j *recordingJob) Poll(context.Context) ingest.IngestResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.polls = append(j.polls, time.Now())
	return j.result
}

func (j *recordingJob) pollCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.polls)
}

func (j *recordingJob) firstPoll() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.polls[0]
}

func TestInitialPassRunsInRegistrationOrder(t *testing.T) {
	a := &recordingJob{name: "a", interval: time.Hour}
	b := &recordingJob{name: "b", interval: time.Hour}
	c := &recordingJob{name: "c", interval: time.Hour}

	s := New(Options{
		Jobs:        []ingest.Job{a, b, c},
		PacingDelay: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = s.Run(ctx)

	require.Equal(t, 1, a.pollCount())
	require.Equal(t, 1, b.pollCount())
	require.Equal(t, 1, c.pollCount())
	assert.True(t, a.firstPoll().Before(b.firstPoll()))
	assert.True(t, b.firstPoll().Before(c.firstPoll()))
}

func TestFailingJobDoesNotBlockOthers(t *testing.T) {
	failing := &recordingJob{
		name:     "failing",
		interval: time.Hour,
		result:   ingest.IngestResult{Failed: true},
	}
	healthy := &recordingJob{name: "healthy", interval: time.Hour}

	s := New(Options{
		Jobs:        []ingest.Job{failing, healthy},
		PacingDelay: time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = s.Run(ctx)

	assert.Equal(t, 1, failing.pollCount())
	assert.Equal(t, 1, healthy.pollCount(), "later job still ran after a failure")
}

func TestSteadyStatePolling(t *testing.T) {
	job := &recordingJob{name: "fast", interval: 20 * time.Millisecond}

	s := New(Options{
		Jobs:        []ingest.Job{job},
		PacingDelay: time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_ = s.Run(ctx)

	// Initial pass plus several ticks.
	assert.GreaterOrEqual(t, job.pollCount(), 3)
}

func TestRunOutcomesRecorded(t *testing.T) {
	runs := memory.NewIngestRunStore()
	job := &recordingJob{
		name:     "filings",
		interval: time.Hour,
		result:   ingest.IngestResult{Fetched: 5, Inserted: 3, Duplicates: 2},
	}

	s := New(Options{
		Jobs:        []ingest.Job{job},
		Runs:        runs,
		PacingDelay: time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = s.Run(ctx)

	got, err := runs.RecentByJob(context.Background(), "filings", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Fetched)
	assert.Equal(t, 3, got[0].Inserted)
	assert.Equal(t, 2, got[0].Duplicates)
	assert.False(t, got[0].Failed)
}

func TestShutdownStopsCleanly(t *testing.T) {
	job := &recordingJob{name: "slow", interval: time.Hour}
	s := New(Options{Jobs: []ingest.Job{job}, PacingDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
