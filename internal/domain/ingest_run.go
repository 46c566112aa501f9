package domain

import "time"

// IngestRun records the outcome of a single job poll for pipeline
// analytics. Append-only; stored in ClickHouse.
type IngestRun struct {
	Job        string
	StartedAt  time.Time
	DurationMs int64
	Fetched    int
	Inserted   int
	Duplicates int
	Filtered   int
	Malformed  int
	Failed     bool
}
