package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// AgentActionStore is an in-memory implementation of storage.AgentActionStore.
type AgentActionStore struct {
	mu   sync.RWMutex
	seq  int64
	data map[string]*domain.AgentAction // keyed by action id
	ord  map[string]int64               // insertion sequence, for stable ordering
}

// NewAgentActionStore creates a new in-memory agent action store.
func NewAgentActionStore() *AgentActionStore {
	return &AgentActionStore{
		data: make(map[string]*domain.AgentAction),
		ord:  make(map[string]int64),
	}
}

// Insert appends an audit entry. Returns ErrDuplicateKey if the action ID exists.
func (s *AgentActionStore) Insert(_ context.Context, a *domain.AgentAction) error {
	if a == nil || a.ID == "" || a.UserWallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[a.ID]; exists {
		return storage.ErrDuplicateKey
	}

	s.seq++
	actionCopy := *a
	s.data[a.ID] = &actionCopy
	s.ord[a.ID] = s.seq
	return nil
}

// RecentByUser retrieves up to limit actions for a user ordered by created_at DESC.
func (s *AgentActionStore) RecentByUser(_ context.Context, userWallet string, limit int) ([]*domain.AgentAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AgentAction
	for _, a := range s.data {
		if a.UserWallet == userWallet {
			actionCopy := *a
			result = append(result, &actionCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return s.ord[result[i].ID] > s.ord[result[j].ID]
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.AgentActionStore = (*AgentActionStore)(nil)
