package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// QuoteStore is an in-memory implementation of storage.QuoteStore.
type QuoteStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Quote // keyed by symbol
}

// NewQuoteStore creates a new in-memory quote store.
func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		data: make(map[string]*domain.Quote),
	}
}

// Upsert replaces the row for the quote's symbol wholesale.
func (s *QuoteStore) Upsert(_ context.Context, q *domain.Quote) error {
	if q == nil || q.Symbol == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quoteCopy := *q
	s.data[q.Symbol] = &quoteCopy
	return nil
}

// GetBySymbol retrieves the latest quote for a symbol.
// Returns ErrNotFound if not exists.
func (s *QuoteStore) GetBySymbol(_ context.Context, symbol string) (*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, exists := s.data[symbol]
	if !exists {
		return nil, storage.ErrNotFound
	}

	quoteCopy := *q
	return &quoteCopy, nil
}

// All retrieves all quotes ordered by symbol ASC.
func (s *QuoteStore) All(_ context.Context) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Quote, 0, len(s.data))
	for _, q := range s.data {
		quoteCopy := *q
		result = append(result, &quoteCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Symbol < result[j].Symbol
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.QuoteStore = (*QuoteStore)(nil)
