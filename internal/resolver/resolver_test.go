package resolver

import (
	"context"
	"testing"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage/memory"
)

func TestResolver_LabelCaseInsensitive(t *testing.T) {
	store := memory.NewKnownAddressStore()
	r := New(store)
	ctx := context.Background()

	err := r.Seed(ctx, []*domain.KnownAddress{
		{Address: "0x28C6c06298d514Db089934071355E5743bf21d60", Label: "Binance Hot Wallet", Category: "exchange"},
	})
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// Mixed-case lookup resolves.
	label := r.Label(ctx, "0x28c6C06298D514DB089934071355E5743BF21D60")
	if label != "Binance Hot Wallet" {
		t.Errorf("Label = %q, want Binance Hot Wallet", label)
	}
}

func TestResolver_UnknownAddress(t *testing.T) {
	r := New(memory.NewKnownAddressStore())

	label := r.Label(context.Background(), "0xdeadbeef")
	if label != domain.UnknownWalletLabel {
		t.Errorf("Label = %q, want %q", label, domain.UnknownWalletLabel)
	}
}

func TestResolver_SeedIdempotent(t *testing.T) {
	store := memory.NewKnownAddressStore()
	r := New(store)
	ctx := context.Background()

	entries := []*domain.KnownAddress{
		{Address: "0xaaa", Label: "First", Category: "exchange"},
	}
	if err := r.Seed(ctx, entries); err != nil {
		t.Fatalf("First seed failed: %v", err)
	}

	// Re-seed with a new label replaces, does not error.
	entries[0].Label = "Second"
	if err := r.Seed(ctx, entries); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	if got := r.Label(ctx, "0xAAA"); got != "Second" {
		t.Errorf("Label after re-seed = %q, want Second", got)
	}
}
