package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

func TestUnlockStore_InsertAndExists(t *testing.T) {
	store := NewUnlockStore()
	ctx := context.Background()

	u := &domain.UnlockRecord{
		UserWallet: "0xabc",
		ItemKind:   domain.KindDeal,
		ItemID:     7,
		TxHash:     "0xdeadbeef",
		AmountPaid: decimal.NewFromFloat(0.5),
		UnlockedAt: time.Now().UTC(),
	}
	if err := store.Insert(ctx, u); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	ok, err := store.Exists(ctx, "0xabc", domain.KindDeal, 7)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("Exists should report true for inserted unlock")
	}

	ok, err = store.Exists(ctx, "0xabc", domain.KindNews, 7)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("Exists should be false for a different item kind")
	}
}

func TestUnlockStore_DuplicateTuple(t *testing.T) {
	store := NewUnlockStore()
	ctx := context.Background()

	u := &domain.UnlockRecord{
		UserWallet: "0xabc",
		ItemKind:   domain.KindAlert,
		ItemID:     3,
		UnlockedAt: time.Now().UTC(),
	}
	if err := store.Insert(ctx, u); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	dup := &domain.UnlockRecord{
		UserWallet: "0xabc",
		ItemKind:   domain.KindAlert,
		ItemID:     3,
		UnlockedAt: time.Now().UTC(),
	}
	if err := store.Insert(ctx, dup); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestUnlockStore_ByUserOrder(t *testing.T) {
	store := NewUnlockStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		u := &domain.UnlockRecord{
			UserWallet: "0xabc",
			ItemKind:   domain.KindNews,
			ItemID:     int64(i + 1),
			UnlockedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Insert(ctx, u); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	other := &domain.UnlockRecord{UserWallet: "0xdef", ItemKind: domain.KindNews, ItemID: 9, UnlockedAt: base}
	if err := store.Insert(ctx, other); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.ByUser(ctx, "0xabc")
	if err != nil {
		t.Fatalf("ByUser failed: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("Expected 3 unlocks, got %d", len(result))
	}
	if result[0].ItemID != 3 {
		t.Errorf("Newest unlock should come first, got item %d", result[0].ItemID)
	}
}

func TestUnlockStore_InvalidKind(t *testing.T) {
	store := NewUnlockStore()

	err := store.Insert(context.Background(), &domain.UnlockRecord{
		UserWallet: "0xabc",
		ItemKind:   domain.ItemKind("bogus"),
		ItemID:     1,
	})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
