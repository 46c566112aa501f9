package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// IngestRunStore is an in-memory implementation of storage.IngestRunStore.
type IngestRunStore struct {
	mu   sync.RWMutex
	data []*domain.IngestRun
}

// NewIngestRunStore creates a new in-memory ingest run store.
func NewIngestRunStore() *IngestRunStore {
	return &IngestRunStore{}
}

// Insert appends an ingest-run row.
func (s *IngestRunStore) Insert(_ context.Context, r *domain.IngestRun) error {
	if r == nil || r.Job == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runCopy := *r
	s.data = append(s.data, &runCopy)
	return nil
}

// RecentByJob retrieves up to limit runs for a job ordered by started_at DESC.
func (s *IngestRunStore) RecentByJob(_ context.Context, job string, limit int) ([]*domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.IngestRun
	for _, r := range s.data {
		if r.Job == job {
			runCopy := *r
			result = append(result, &runCopy)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.IngestRunStore = (*IngestRunStore)(nil)
