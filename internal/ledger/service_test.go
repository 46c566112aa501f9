package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
	"github.com/AmrendraTheCoder/microTerm/internal/storage/memory"
)

func newTestService(now *time.Time) *Service {
	return New(Options{
		Store: memory.NewLedgerStore(memory.NewGateUseStore()),
		Now:   func() time.Time { return *now },
	})
}

func TestAwardUnlockReward(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&now)
	ctx := context.Background()

	row, err := svc.AwardUnlockReward(ctx, "0xabc")
	if err != nil {
		t.Fatalf("AwardUnlockReward: %v", err)
	}
	if row.Balance != RewardPerUnlock || row.TotalEarned != RewardPerUnlock {
		t.Errorf("balance = %d, earned = %d, want %d", row.Balance, row.TotalEarned, RewardPerUnlock)
	}
}

func TestSpendRejectsOverdraw(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&now)
	ctx := context.Background()

	if _, err := svc.Earn(ctx, "0xabc", 50); err != nil {
		t.Fatalf("Earn: %v", err)
	}
	if _, err := svc.Spend(ctx, "0xabc", 60); !errors.Is(err, storage.ErrInsufficientBalance) {
		t.Fatalf("Spend overdraw err = %v, want ErrInsufficientBalance", err)
	}

	row, err := svc.Spend(ctx, "0xabc", 50)
	if err != nil {
		t.Fatalf("Spend: %v", err)
	}
	if row.Balance != 0 || row.TotalSpent != 50 {
		t.Errorf("balance = %d, spent = %d", row.Balance, row.TotalSpent)
	}
}

func TestWalletSpellingsShareOneRow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&now)
	ctx := context.Background()

	if _, err := svc.Earn(ctx, "0xABCDEF", 50); err != nil {
		t.Fatalf("Earn: %v", err)
	}
	row, err := svc.Earn(ctx, "0xabcdef", 25)
	if err != nil {
		t.Fatalf("Earn: %v", err)
	}
	if row.Balance != 75 {
		t.Errorf("balance = %d, want 75: checksummed and lowercase wallets must share a row", row.Balance)
	}

	stats, err := svc.Stats(ctx, "0xAbCdEf")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Balance != 75 {
		t.Errorf("Stats balance = %d, want 75", stats.Balance)
	}
}

func TestFreeUnlockEligibilityAndCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&now)
	ctx := context.Background()
	wallet := "0xholder"

	// Unknown user is never eligible.
	ok, err := svc.CanUseFreeUnlock(ctx, wallet)
	if err != nil || ok {
		t.Fatalf("CanUseFreeUnlock(unknown) = %v, %v", ok, err)
	}

	if _, err := svc.Earn(ctx, wallet, MinFreeUnlockBalance); err != nil {
		t.Fatalf("Earn: %v", err)
	}
	ok, err = svc.CanUseFreeUnlock(ctx, wallet)
	if err != nil || !ok {
		t.Fatalf("CanUseFreeUnlock(funded) = %v, %v", ok, err)
	}

	outcome, err := svc.UseFreeUnlock(ctx, wallet, domain.KindDeal, 1)
	if err != nil {
		t.Fatalf("UseFreeUnlock: %v", err)
	}
	if outcome != domain.FreeUnlockConsumed {
		t.Fatalf("outcome = %s, want consumed", outcome)
	}

	// Within the cooldown window a second free unlock is refused.
	now = now.Add(1 * time.Hour)
	outcome, err = svc.UseFreeUnlock(ctx, wallet, domain.KindDeal, 2)
	if err != nil {
		t.Fatalf("UseFreeUnlock: %v", err)
	}
	if outcome != domain.FreeUnlockCooldown {
		t.Fatalf("outcome = %s, want cooldown", outcome)
	}

	// After the window elapses the path reopens.
	now = now.Add(FreeUnlockCooldown)
	outcome, err = svc.UseFreeUnlock(ctx, wallet, domain.KindDeal, 2)
	if err != nil {
		t.Fatalf("UseFreeUnlock: %v", err)
	}
	if outcome != domain.FreeUnlockConsumed {
		t.Fatalf("outcome = %s, want consumed", outcome)
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&now)
	ctx := context.Background()
	wallet := "0xholder"

	// No row yet: zeroed stats, Bronze tier, no error.
	stats, err := svc.Stats(ctx, wallet)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Balance != 0 || stats.Tier.Name != "Bronze" || stats.CanFreeUnlock {
		t.Errorf("empty stats = %+v", stats)
	}

	if _, err := svc.Earn(ctx, wallet, 600); err != nil {
		t.Fatalf("Earn: %v", err)
	}
	if _, err := svc.UseFreeUnlock(ctx, wallet, domain.KindNews, 7); err != nil {
		t.Fatalf("UseFreeUnlock: %v", err)
	}

	now = now.Add(2 * time.Hour)
	stats, err = svc.Stats(ctx, wallet)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Balance != 600 || stats.Tier.Name != "Gold" {
		t.Errorf("stats = %+v", stats)
	}
	if stats.CanFreeUnlock {
		t.Error("CanFreeUnlock should be false inside the cooldown window")
	}
	if stats.NextFreeUnlock == nil {
		t.Fatal("NextFreeUnlock should be set inside the cooldown window")
	}
	wantNext := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	if !stats.NextFreeUnlock.Equal(wantNext) {
		t.Errorf("NextFreeUnlock = %s, want %s", stats.NextFreeUnlock, wantNext)
	}
}

func TestBatchReward(t *testing.T) {
	tests := []struct {
		count int
		want  int64
	}{
		{0, 0},
		{1, 10},
		{9, 90},
		{10, 110},  // 100 * 1.1
		{49, 539},  // 490 * 1.1
		{50, 660},  // 500 * 1.1 * 1.2
		{100, 1320},
	}

	for _, tt := range tests {
		if got := BatchReward(tt.count); got != tt.want {
			t.Errorf("BatchReward(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		balance int64
		name    string
		next    string
	}{
		{0, "Bronze", "Silver"},
		{99, "Bronze", "Silver"},
		{100, "Silver", "Gold"},
		{500, "Gold", "Diamond"},
		{999, "Gold", "Diamond"},
		{1000, "Diamond", ""},
		{5000, "Diamond", ""},
	}

	for _, tt := range tests {
		tier := TierFor(tt.balance)
		if tier.Name != tt.name || tier.NextTier != tt.next {
			t.Errorf("TierFor(%d) = %s/%s, want %s/%s", tt.balance, tier.Name, tier.NextTier, tt.name, tt.next)
		}
		if len(tier.Benefits) == 0 {
			t.Errorf("TierFor(%d) has no benefits", tt.balance)
		}
	}
}
