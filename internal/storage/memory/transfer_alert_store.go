package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// TransferAlertStore is an in-memory implementation of storage.TransferAlertStore.
type TransferAlertStore struct {
	mu     sync.RWMutex
	nextID int64
	byHash map[string]*domain.TransferAlert
	byID   map[int64]*domain.TransferAlert
}

// NewTransferAlertStore creates a new in-memory transfer alert store.
func NewTransferAlertStore() *TransferAlertStore {
	return &TransferAlertStore{
		nextID: 1,
		byHash: make(map[string]*domain.TransferAlert),
		byID:   make(map[int64]*domain.TransferAlert),
	}
}

// Insert adds a new alert and sets its ID.
// Returns ErrDuplicateKey if the tx hash exists.
func (s *TransferAlertStore) Insert(_ context.Context, a *domain.TransferAlert) error {
	if a == nil || a.TxHash == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byHash[a.TxHash]; exists {
		return storage.ErrDuplicateKey
	}

	a.ID = s.nextID
	s.nextID++

	alertCopy := *a
	s.byHash[a.TxHash] = &alertCopy
	s.byID[a.ID] = &alertCopy
	return nil
}

// Recent retrieves up to limit alerts ordered by observed_at DESC, newest id first.
func (s *TransferAlertStore) Recent(_ context.Context, limit int) ([]*domain.TransferAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TransferAlert, 0, len(s.byID))
	for _, a := range s.byID {
		alertCopy := *a
		result = append(result, &alertCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].ObservedAt.Equal(result[j].ObservedAt) {
			return result[i].ObservedAt.After(result[j].ObservedAt)
		}
		return result[i].ID > result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetByID retrieves an alert by its ID. Returns ErrNotFound if not exists.
func (s *TransferAlertStore) GetByID(_ context.Context, id int64) (*domain.TransferAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.byID[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	alertCopy := *a
	return &alertCopy, nil
}

// Verify interface compliance at compile time.
var _ storage.TransferAlertStore = (*TransferAlertStore)(nil)
