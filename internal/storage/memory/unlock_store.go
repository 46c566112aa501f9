package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

func itemKey(userWallet string, kind domain.ItemKind, itemID int64) string {
	return fmt.Sprintf("%s|%s|%d", userWallet, kind, itemID)
}

// UnlockStore is an in-memory implementation of storage.UnlockStore.
type UnlockStore struct {
	mu     sync.RWMutex
	nextID int64
	data   map[string]*domain.UnlockRecord // keyed by (user, kind, item id)
}

// NewUnlockStore creates a new in-memory unlock store.
func NewUnlockStore() *UnlockStore {
	return &UnlockStore{
		nextID: 1,
		data:   make(map[string]*domain.UnlockRecord),
	}
}

// Insert adds a new unlock record and sets its ID.
// Returns ErrDuplicateKey if (user, item kind, item id) exists.
func (s *UnlockStore) Insert(_ context.Context, u *domain.UnlockRecord) error {
	if u == nil || u.UserWallet == "" || !u.ItemKind.Valid() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey(u.UserWallet, u.ItemKind, u.ItemID)
	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}

	u.ID = s.nextID
	s.nextID++

	unlockCopy := *u
	s.data[key] = &unlockCopy
	return nil
}

// Exists reports whether the user has a paid unlock for the item.
func (s *UnlockStore) Exists(_ context.Context, userWallet string, kind domain.ItemKind, itemID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.data[itemKey(userWallet, kind, itemID)]
	return exists, nil
}

// ByUser retrieves all unlocks for a user ordered by unlocked_at DESC.
func (s *UnlockStore) ByUser(_ context.Context, userWallet string) ([]*domain.UnlockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.UnlockRecord
	for _, u := range s.data {
		if u.UserWallet == userWallet {
			unlockCopy := *u
			result = append(result, &unlockCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UnlockedAt.Equal(result[j].UnlockedAt) {
			return result[i].UnlockedAt.After(result[j].UnlockedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.UnlockStore = (*UnlockStore)(nil)
