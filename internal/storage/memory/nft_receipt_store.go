package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// NFTReceiptStore is an in-memory implementation of storage.NFTReceiptStore.
type NFTReceiptStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.NFTReceipt // keyed by token id
}

// NewNFTReceiptStore creates a new in-memory NFT receipt store.
func NewNFTReceiptStore() *NFTReceiptStore {
	return &NFTReceiptStore{
		data: make(map[int64]*domain.NFTReceipt),
	}
}

// Insert adds a minted receipt. Returns ErrDuplicateKey if the token id exists.
func (s *NFTReceiptStore) Insert(_ context.Context, r *domain.NFTReceipt) error {
	if r == nil || r.UserWallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.TokenID]; exists {
		return storage.ErrDuplicateKey
	}

	receiptCopy := *r
	s.data[r.TokenID] = &receiptCopy
	return nil
}

// ByUser retrieves all receipts for a user ordered by minted_at DESC.
func (s *NFTReceiptStore) ByUser(_ context.Context, userWallet string) ([]*domain.NFTReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.NFTReceipt
	for _, r := range s.data {
		if r.UserWallet == userWallet {
			receiptCopy := *r
			result = append(result, &receiptCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].MintedAt.Equal(result[j].MintedAt) {
			return result[i].MintedAt.After(result[j].MintedAt)
		}
		return result[i].TokenID > result[j].TokenID
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.NFTReceiptStore = (*NFTReceiptStore)(nil)
