package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

func newLedger() (*LedgerStore, *GateUseStore) {
	gates := NewGateUseStore()
	return NewLedgerStore(gates), gates
}

func TestLedgerStore_AdjustCreatesRow(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	row, err := ledger.Adjust(ctx, "0xabc", 50, 0, now)
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if row.Balance != 50 || row.TotalEarned != 50 || row.TotalSpent != 0 {
		t.Errorf("Unexpected row after earn: %+v", row)
	}

	row, err = ledger.Adjust(ctx, "0xabc", 0, 20, now)
	if err != nil {
		t.Fatalf("Adjust spend failed: %v", err)
	}
	if row.Balance != 30 || row.TotalEarned != 50 || row.TotalSpent != 20 {
		t.Errorf("Unexpected row after spend: %+v", row)
	}
	if row.Balance != row.TotalEarned-row.TotalSpent {
		t.Errorf("Balance invariant violated: %+v", row)
	}
}

func TestLedgerStore_AdjustNormalizesWalletCase(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if _, err := ledger.Adjust(ctx, "0xABCDEF", 50, 0, now); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	row, err := ledger.Adjust(ctx, "0xabcdef", 25, 0, now)
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if row.Balance != 75 {
		t.Errorf("Balance = %d, want 75: wallet spellings must share one row", row.Balance)
	}
	if row.UserWallet != "0xabcdef" {
		t.Errorf("UserWallet = %q, want lowercase", row.UserWallet)
	}

	got, err := ledger.Get(ctx, "0xAbCdEf")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Balance != 75 {
		t.Errorf("Get balance = %d, want 75", got.Balance)
	}
}

func TestLedgerStore_AdjustRejectsOverdraw(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := ledger.Adjust(ctx, "0xabc", 10, 0, now); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}

	_, err := ledger.Adjust(ctx, "0xabc", 0, 11, now)
	if !errors.Is(err, storage.ErrInsufficientBalance) {
		t.Fatalf("Expected ErrInsufficientBalance, got %v", err)
	}

	// The failed spend must leave the row untouched.
	row, err := ledger.Get(ctx, "0xabc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if row.Balance != 10 || row.TotalSpent != 0 {
		t.Errorf("Row mutated by rejected spend: %+v", row)
	}
}

func TestLedgerStore_GetNotFound(t *testing.T) {
	ledger, _ := newLedger()

	_, err := ledger.Get(context.Background(), "0xnobody")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLedgerStore_ConcurrentAdjusts(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Adjust(ctx, "0xabc", 10, 0, now); err != nil {
				t.Errorf("Adjust failed: %v", err)
			}
		}()
	}
	wg.Wait()

	row, err := ledger.Get(ctx, "0xabc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if row.Balance != 1000 || row.TotalEarned != 1000 {
		t.Errorf("Lost updates: %+v", row)
	}
}

func TestLedgerStore_ConsumeFreeUnlock(t *testing.T) {
	ledger, gates := newLedger()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := domain.FreeUnlockPolicy{MinBalance: 100, Cooldown: 24 * time.Hour}

	if _, err := ledger.Adjust(ctx, "0xabc", 150, 0, now); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}

	outcome, err := ledger.ConsumeFreeUnlock(ctx, "0xabc", domain.KindDeal, 1, policy, now)
	if err != nil {
		t.Fatalf("ConsumeFreeUnlock failed: %v", err)
	}
	if outcome != domain.FreeUnlockConsumed {
		t.Fatalf("Expected consumed, got %s", outcome)
	}

	// Gate-use row and cooldown stamp must both be present.
	ok, err := gates.Exists(ctx, "0xabc", domain.KindDeal, 1)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("Gate-use row missing after consume")
	}
	row, err := ledger.Get(ctx, "0xabc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if row.LastFreeUnlock == nil || !row.LastFreeUnlock.Equal(now) {
		t.Errorf("Cooldown stamp missing or wrong: %+v", row.LastFreeUnlock)
	}
	// Balance is untouched by a free unlock.
	if row.Balance != 150 {
		t.Errorf("Free unlock must not spend points, balance = %d", row.Balance)
	}
}

func TestLedgerStore_ConsumeFreeUnlock_Cooldown(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := domain.FreeUnlockPolicy{MinBalance: 100, Cooldown: 24 * time.Hour}

	if _, err := ledger.Adjust(ctx, "0xabc", 150, 0, now); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if outcome, err := ledger.ConsumeFreeUnlock(ctx, "0xabc", domain.KindDeal, 1, policy, now); err != nil || outcome != domain.FreeUnlockConsumed {
		t.Fatalf("First consume: outcome=%v err=%v", outcome, err)
	}

	// A second item an hour later hits the cooldown.
	outcome, err := ledger.ConsumeFreeUnlock(ctx, "0xabc", domain.KindDeal, 2, policy, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ConsumeFreeUnlock failed: %v", err)
	}
	if outcome != domain.FreeUnlockCooldown {
		t.Errorf("Expected cooldown, got %s", outcome)
	}

	// After the window elapses it succeeds again.
	outcome, err = ledger.ConsumeFreeUnlock(ctx, "0xabc", domain.KindDeal, 2, policy, now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("ConsumeFreeUnlock failed: %v", err)
	}
	if outcome != domain.FreeUnlockConsumed {
		t.Errorf("Expected consumed after cooldown elapsed, got %s", outcome)
	}
}

func TestLedgerStore_ConsumeFreeUnlock_LowBalance(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()
	now := time.Now().UTC()
	policy := domain.FreeUnlockPolicy{MinBalance: 100, Cooldown: 24 * time.Hour}

	if _, err := ledger.Adjust(ctx, "0xabc", 99, 0, now); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}

	outcome, err := ledger.ConsumeFreeUnlock(ctx, "0xabc", domain.KindNews, 1, policy, now)
	if err != nil {
		t.Fatalf("ConsumeFreeUnlock failed: %v", err)
	}
	if outcome != domain.FreeUnlockLowBalance {
		t.Errorf("Expected low_balance, got %s", outcome)
	}

	// An unknown user is also low balance, not an error.
	outcome, err = ledger.ConsumeFreeUnlock(ctx, "0xnobody", domain.KindNews, 1, policy, now)
	if err != nil {
		t.Fatalf("ConsumeFreeUnlock failed: %v", err)
	}
	if outcome != domain.FreeUnlockLowBalance {
		t.Errorf("Expected low_balance for unknown user, got %s", outcome)
	}
}

func TestLedgerStore_ConsumeFreeUnlock_AlreadyUsed(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()
	now := time.Now().UTC()
	policy := domain.FreeUnlockPolicy{MinBalance: 100, Cooldown: 24 * time.Hour}

	if _, err := ledger.Adjust(ctx, "0xabc", 500, 0, now); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if outcome, err := ledger.ConsumeFreeUnlock(ctx, "0xabc", domain.KindAlert, 5, policy, now); err != nil || outcome != domain.FreeUnlockConsumed {
		t.Fatalf("First consume: outcome=%v err=%v", outcome, err)
	}

	outcome, err := ledger.ConsumeFreeUnlock(ctx, "0xabc", domain.KindAlert, 5, policy, now.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("ConsumeFreeUnlock failed: %v", err)
	}
	if outcome != domain.FreeUnlockAlreadyUsed {
		t.Errorf("Expected already_used, got %s", outcome)
	}
}

func TestLedgerStore_ConsumeFreeUnlock_ConcurrentSingleWinner(t *testing.T) {
	ledger, _ := newLedger()
	ctx := context.Background()
	now := time.Now().UTC()
	policy := domain.FreeUnlockPolicy{MinBalance: 100, Cooldown: 24 * time.Hour}

	if _, err := ledger.Adjust(ctx, "0xabc", 500, 0, now); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	consumed := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(itemID int64) {
			defer wg.Done()
			outcome, err := ledger.ConsumeFreeUnlock(ctx, "0xabc", domain.KindDeal, itemID, policy, time.Now().UTC())
			if err != nil {
				t.Errorf("ConsumeFreeUnlock failed: %v", err)
				return
			}
			if outcome == domain.FreeUnlockConsumed {
				mu.Lock()
				consumed++
				mu.Unlock()
			}
		}(int64(i + 1))
	}
	wg.Wait()

	if consumed != 1 {
		t.Errorf("Expected exactly one winner, got %d", consumed)
	}
}
