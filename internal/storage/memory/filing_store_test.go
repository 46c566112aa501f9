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

func TestFilingStore_InsertAndGet(t *testing.T) {
	store := NewFilingStore()
	ctx := context.Background()

	f := &domain.Filing{
		CompanyName:  "Acme Capital",
		AmountRaised: decimal.NewFromInt(25_000_000),
		FilingURL:    "https://filings.example.com/acme-1",
		Sector:       "Fintech",
		FiledAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Premium:      true,
	}

	if err := store.Insert(ctx, f); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if f.ID == 0 {
		t.Fatal("Insert did not assign an ID")
	}

	got, err := store.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FilingURL != f.FilingURL {
		t.Errorf("FilingURL mismatch: got %s, want %s", got.FilingURL, f.FilingURL)
	}
	if !got.AmountRaised.Equal(f.AmountRaised) {
		t.Errorf("AmountRaised mismatch: got %s, want %s", got.AmountRaised, f.AmountRaised)
	}
}

func TestFilingStore_DuplicateURL(t *testing.T) {
	store := NewFilingStore()
	ctx := context.Background()

	f := &domain.Filing{
		CompanyName: "Acme Capital",
		FilingURL:   "https://filings.example.com/acme-1",
		FiledAt:     time.Now().UTC(),
	}

	if err := store.Insert(ctx, f); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	dup := &domain.Filing{
		CompanyName: "Acme Capital (repost)",
		FilingURL:   "https://filings.example.com/acme-1",
		FiledAt:     time.Now().UTC(),
	}
	if err := store.Insert(ctx, dup); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestFilingStore_RecentOrderAndLimit(t *testing.T) {
	store := NewFilingStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		f := &domain.Filing{
			CompanyName: "Co",
			FilingURL:   "https://filings.example.com/" + string(rune('a'+i)),
			FiledAt:     base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Insert(ctx, f); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(result))
	}
	for i := 1; i < len(result); i++ {
		if result[i].FiledAt.After(result[i-1].FiledAt) {
			t.Errorf("Recent not ordered DESC at index %d", i)
		}
	}
	if !result[0].FiledAt.Equal(base.Add(4 * time.Hour)) {
		t.Errorf("Newest filing should come first, got %v", result[0].FiledAt)
	}
}

func TestFilingStore_NotFound(t *testing.T) {
	store := NewFilingStore()

	_, err := store.GetByID(context.Background(), 404)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFilingStore_InvalidInput(t *testing.T) {
	store := NewFilingStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Insert(ctx, &domain.Filing{FilingURL: ""}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty URL, got %v", err)
	}
}
