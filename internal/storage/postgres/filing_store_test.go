package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
	"github.com/AmrendraTheCoder/microTerm/internal/storage/postgres"
)

func TestFilingStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewFilingStore(pool)
	ctx := context.Background()

	filing := &domain.Filing{
		CompanyName:  "Meridian Labs",
		AmountRaised: decimal.NewFromInt(12_500_000),
		FilingURL:    "https://filings.example.com/meridian-d1",
		Sector:       "AI Infrastructure",
		FiledAt:      time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC),
		Premium:      true,
	}

	err := store.Insert(ctx, filing)
	require.NoError(t, err)
	require.NotZero(t, filing.ID, "Insert should assign an ID")
	require.NotZero(t, filing.CreatedAt, "Insert should set created_at")

	retrieved, err := store.GetByID(ctx, filing.ID)
	require.NoError(t, err)

	assert.Equal(t, filing.CompanyName, retrieved.CompanyName)
	assert.True(t, filing.AmountRaised.Equal(retrieved.AmountRaised))
	assert.Equal(t, filing.FilingURL, retrieved.FilingURL)
	assert.Equal(t, filing.Sector, retrieved.Sector)
	assert.True(t, filing.FiledAt.Equal(retrieved.FiledAt))
	assert.Equal(t, filing.Premium, retrieved.Premium)
}

func TestFilingStore_InsertDuplicateURL(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewFilingStore(pool)
	ctx := context.Background()

	filing := &domain.Filing{
		CompanyName:  "Meridian Labs",
		AmountRaised: decimal.NewFromInt(12_500_000),
		FilingURL:    "https://filings.example.com/meridian-d1",
		FiledAt:      time.Now().UTC(),
	}

	err := store.Insert(ctx, filing)
	require.NoError(t, err)

	dup := &domain.Filing{
		CompanyName:  "Meridian Labs Repost",
		AmountRaised: decimal.NewFromInt(12_500_000),
		FilingURL:    "https://filings.example.com/meridian-d1",
		FiledAt:      time.Now().UTC(),
	}
	err = store.Insert(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestFilingStore_RecentOrdering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewFilingStore(pool)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	urls := []string{"a", "b", "c"}
	for i, u := range urls {
		filing := &domain.Filing{
			CompanyName:  "Co " + u,
			AmountRaised: decimal.NewFromInt(1_000_000),
			FilingURL:    "https://filings.example.com/" + u,
			FiledAt:      base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.Insert(ctx, filing))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Co c", recent[0].CompanyName)
	assert.Equal(t, "Co b", recent[1].CompanyName)
}

func TestFilingStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewFilingStore(pool)

	_, err := store.GetByID(context.Background(), 999999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
