package memory

import (
	"context"
	"sync"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// LedgerStore is an in-memory implementation of storage.LedgerStore.
// All mutation happens under a single mutex, so the earned/spent/balance
// invariant and the free-unlock check-then-stamp pair are atomic.
type LedgerStore struct {
	mu    sync.Mutex
	data  map[string]*domain.LedgerBalance // keyed by lowercase wallet
	gates *GateUseStore
}

// NewLedgerStore creates a new in-memory ledger store. Gate-use rows for
// free unlocks are written into gates under the ledger lock.
func NewLedgerStore(gates *GateUseStore) *LedgerStore {
	return &LedgerStore{
		data:  make(map[string]*domain.LedgerBalance),
		gates: gates,
	}
}

// Adjust atomically applies earn/spend to the user's balance, creating
// the row if absent. Returns ErrInsufficientBalance if the spend would
// overdraw; the row is left untouched in that case.
func (s *LedgerStore) Adjust(_ context.Context, userWallet string, earn, spend int64, now time.Time) (*domain.LedgerBalance, error) {
	if userWallet == "" || earn < 0 || spend < 0 {
		return nil, storage.ErrInvalidInput
	}
	userWallet = domain.NormalizeWallet(userWallet)

	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.data[userWallet]
	if !exists {
		row = &domain.LedgerBalance{UserWallet: userWallet}
		s.data[userWallet] = row
	}

	if row.Balance+earn-spend < 0 {
		return nil, storage.ErrInsufficientBalance
	}

	row.Balance += earn - spend
	row.TotalEarned += earn
	row.TotalSpent += spend
	row.UpdatedAt = now

	rowCopy := *row
	return &rowCopy, nil
}

// Get retrieves the balance row. Returns ErrNotFound if the user has
// never been touched.
func (s *LedgerStore) Get(_ context.Context, userWallet string) (*domain.LedgerBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.data[domain.NormalizeWallet(userWallet)]
	if !exists {
		return nil, storage.ErrNotFound
	}

	rowCopy := *row
	return &rowCopy, nil
}

// ConsumeFreeUnlock atomically checks the policy, stamps last_free_unlock,
// and writes the gate-use row. Two concurrent calls for the same user
// cannot both consume: the second sees the first's stamp.
func (s *LedgerStore) ConsumeFreeUnlock(_ context.Context, userWallet string, kind domain.ItemKind, itemID int64, policy domain.FreeUnlockPolicy, now time.Time) (domain.FreeUnlockOutcome, error) {
	if userWallet == "" || !kind.Valid() {
		return 0, storage.ErrInvalidInput
	}
	userWallet = domain.NormalizeWallet(userWallet)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gates.exists(userWallet, kind, itemID) {
		return domain.FreeUnlockAlreadyUsed, nil
	}

	row, exists := s.data[userWallet]
	if !exists || row.Balance < policy.MinBalance {
		return domain.FreeUnlockLowBalance, nil
	}
	if row.LastFreeUnlock != nil && now.Sub(*row.LastFreeUnlock) < policy.Cooldown {
		return domain.FreeUnlockCooldown, nil
	}

	if err := s.gates.append(&domain.GateUse{
		UserWallet: userWallet,
		ItemKind:   kind,
		ItemID:     itemID,
		UsedAt:     now,
	}); err != nil {
		return 0, err
	}

	stamp := now
	row.LastFreeUnlock = &stamp
	row.UpdatedAt = now
	return domain.FreeUnlockConsumed, nil
}

// Verify interface compliance at compile time.
var _ storage.LedgerStore = (*LedgerStore)(nil)
