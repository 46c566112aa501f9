package clickhouse

import (
	"context"
	"fmt"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// IngestRunStore implements storage.IngestRunStore using ClickHouse.
// Runs are append-only analytics rows; MergeTree does not enforce
// uniqueness, which is fine here.
type IngestRunStore struct {
	conn *Conn
}

// NewIngestRunStore creates a new IngestRunStore.
func NewIngestRunStore(conn *Conn) *IngestRunStore {
	return &IngestRunStore{conn: conn}
}

// Compile-time interface check.
var _ storage.IngestRunStore = (*IngestRunStore)(nil)

// Insert appends an ingest-run row.
func (s *IngestRunStore) Insert(ctx context.Context, r *domain.IngestRun) error {
	if r == nil || r.Job == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO ingest_runs (
			job, started_at, duration_ms, fetched, inserted, duplicates, filtered, malformed, failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		r.Job, r.StartedAt, r.DurationMs,
		int32(r.Fetched), int32(r.Inserted), int32(r.Duplicates),
		int32(r.Filtered), int32(r.Malformed), r.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert ingest run: %w", err)
	}
	return nil
}

// RecentByJob retrieves up to limit runs for a job ordered by started_at DESC.
func (s *IngestRunStore) RecentByJob(ctx context.Context, job string, limit int) ([]*domain.IngestRun, error) {
	query := `
		SELECT job, started_at, duration_ms, fetched, inserted, duplicates, filtered, malformed, failed
		FROM ingest_runs
		WHERE job = ?
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := s.conn.Query(ctx, query, job, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("query ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.IngestRun
	for rows.Next() {
		var r domain.IngestRun
		var fetched, inserted, duplicates, filtered, malformed int32

		err := rows.Scan(
			&r.Job, &r.StartedAt, &r.DurationMs,
			&fetched, &inserted, &duplicates, &filtered, &malformed, &r.Failed,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ingest run row: %w", err)
		}

		r.Fetched = int(fetched)
		r.Inserted = int(inserted)
		r.Duplicates = int(duplicates)
		r.Filtered = int(filtered)
		r.Malformed = int(malformed)
		runs = append(runs, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingest run rows: %w", err)
	}

	return runs, nil
}
