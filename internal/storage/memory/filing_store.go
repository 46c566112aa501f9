package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// FilingStore is an in-memory implementation of storage.FilingStore.
type FilingStore struct {
	mu     sync.RWMutex
	nextID int64
	byURL  map[string]*domain.Filing
	byID   map[int64]*domain.Filing
}

// NewFilingStore creates a new in-memory filing store.
func NewFilingStore() *FilingStore {
	return &FilingStore{
		nextID: 1,
		byURL:  make(map[string]*domain.Filing),
		byID:   make(map[int64]*domain.Filing),
	}
}

// Insert adds a new filing and sets its ID.
// Returns ErrDuplicateKey if the filing URL exists.
func (s *FilingStore) Insert(_ context.Context, f *domain.Filing) error {
	if f == nil || f.FilingURL == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byURL[f.FilingURL]; exists {
		return storage.ErrDuplicateKey
	}

	f.ID = s.nextID
	s.nextID++

	// Store a copy to prevent external mutation
	filingCopy := *f
	s.byURL[f.FilingURL] = &filingCopy
	s.byID[f.ID] = &filingCopy
	return nil
}

// Recent retrieves up to limit filings ordered by filed_at DESC, newest id first.
func (s *FilingStore) Recent(_ context.Context, limit int) ([]*domain.Filing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Filing, 0, len(s.byID))
	for _, f := range s.byID {
		filingCopy := *f
		result = append(result, &filingCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].FiledAt.Equal(result[j].FiledAt) {
			return result[i].FiledAt.After(result[j].FiledAt)
		}
		return result[i].ID > result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetByID retrieves a filing by its ID. Returns ErrNotFound if not exists.
func (s *FilingStore) GetByID(_ context.Context, id int64) (*domain.Filing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, exists := s.byID[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	filingCopy := *f
	return &filingCopy, nil
}

// Verify interface compliance at compile time.
var _ storage.FilingStore = (*FilingStore)(nil)
