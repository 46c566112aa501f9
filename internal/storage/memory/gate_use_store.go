package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// GateUseStore is an in-memory implementation of storage.GateUseStore.
// Rows are appended only by LedgerStore.ConsumeFreeUnlock.
type GateUseStore struct {
	mu     sync.RWMutex
	nextID int64
	data   map[string]*domain.GateUse // keyed by (user, kind, item id)
}

// NewGateUseStore creates a new in-memory gate use store.
func NewGateUseStore() *GateUseStore {
	return &GateUseStore{
		nextID: 1,
		data:   make(map[string]*domain.GateUse),
	}
}

// append records a gate use. Called by LedgerStore while it holds the
// ledger lock, so the check-then-append pair is never interleaved.
func (s *GateUseStore) append(g *domain.GateUse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey(g.UserWallet, g.ItemKind, g.ItemID)
	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}

	g.ID = s.nextID
	s.nextID++

	useCopy := *g
	s.data[key] = &useCopy
	return nil
}

// exists is the lock-internal variant of Exists used by LedgerStore.
func (s *GateUseStore) exists(userWallet string, kind domain.ItemKind, itemID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[itemKey(userWallet, kind, itemID)]
	return ok
}

// Exists reports whether the user has consumed a free unlock for the item.
func (s *GateUseStore) Exists(_ context.Context, userWallet string, kind domain.ItemKind, itemID int64) (bool, error) {
	return s.exists(userWallet, kind, itemID), nil
}

// ByUser retrieves all gate uses for a user ordered by used_at DESC.
func (s *GateUseStore) ByUser(_ context.Context, userWallet string) ([]*domain.GateUse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.GateUse
	for _, g := range s.data {
		if g.UserWallet == userWallet {
			useCopy := *g
			result = append(result, &useCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UsedAt.Equal(result[j].UsedAt) {
			return result[i].UsedAt.After(result[j].UsedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.GateUseStore = (*GateUseStore)(nil)
