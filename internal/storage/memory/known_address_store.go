package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// KnownAddressStore is an in-memory implementation of storage.KnownAddressStore.
type KnownAddressStore struct {
	mu   sync.RWMutex
	data map[string]*domain.KnownAddress // keyed by lowercase address
}

// NewKnownAddressStore creates a new in-memory known address store.
func NewKnownAddressStore() *KnownAddressStore {
	return &KnownAddressStore{
		data: make(map[string]*domain.KnownAddress),
	}
}

// Upsert inserts or replaces a known address. Idempotent.
func (s *KnownAddressStore) Upsert(_ context.Context, a *domain.KnownAddress) error {
	if a == nil || a.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	addrCopy := *a
	addrCopy.Address = strings.ToLower(a.Address)
	s.data[addrCopy.Address] = &addrCopy
	return nil
}

// Get retrieves the entry for an address (case-insensitive).
// Returns ErrNotFound if not exists.
func (s *KnownAddressStore) Get(_ context.Context, address string) (*domain.KnownAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.data[strings.ToLower(address)]
	if !exists {
		return nil, storage.ErrNotFound
	}

	addrCopy := *a
	return &addrCopy, nil
}

// Verify interface compliance at compile time.
var _ storage.KnownAddressStore = (*KnownAddressStore)(nil)
