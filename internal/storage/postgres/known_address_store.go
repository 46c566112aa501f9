package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// KnownAddressStore implements storage.KnownAddressStore using PostgreSQL.
type KnownAddressStore struct {
	pool *Pool
}

// NewKnownAddressStore creates a new KnownAddressStore.
func NewKnownAddressStore(pool *Pool) *KnownAddressStore {
	return &KnownAddressStore{pool: pool}
}

// Compile-time interface check.
var _ storage.KnownAddressStore = (*KnownAddressStore)(nil)

// Upsert inserts or replaces a known address. Idempotent.
func (s *KnownAddressStore) Upsert(ctx context.Context, a *domain.KnownAddress) error {
	if a == nil || a.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO known_addresses (address, label, category)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO UPDATE SET
			label = EXCLUDED.label,
			category = EXCLUDED.category
	`

	_, err := s.pool.Exec(ctx, query, strings.ToLower(a.Address), a.Label, a.Category)
	if err != nil {
		return fmt.Errorf("upsert known address: %w", err)
	}
	return nil
}

// Get retrieves the entry for an address (case-insensitive).
// Returns ErrNotFound if not exists.
func (s *KnownAddressStore) Get(ctx context.Context, address string) (*domain.KnownAddress, error) {
	query := `
		SELECT address, label, category
		FROM known_addresses
		WHERE address = $1
	`

	var a domain.KnownAddress
	err := s.pool.QueryRow(ctx, query, strings.ToLower(address)).Scan(&a.Address, &a.Label, &a.Category)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get known address: %w", err)
	}
	return &a, nil
}
