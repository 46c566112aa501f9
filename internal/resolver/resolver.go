// Package resolver maps blockchain addresses to human labels using the
// known-address reference data.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// AddressResolver resolves addresses to labels. Lookups are
// case-insensitive; misses are not errors.
type AddressResolver struct {
	store storage.KnownAddressStore
}

// New creates a new AddressResolver.
func New(store storage.KnownAddressStore) *AddressResolver {
	return &AddressResolver{store: store}
}

// Label returns the label for an address, or "Unknown Wallet" when the
// address has no known-address entry.
func (r *AddressResolver) Label(ctx context.Context, address string) string {
	entry, err := r.Lookup(ctx, address)
	if err != nil || entry == nil {
		return domain.UnknownWalletLabel
	}
	return entry.Label
}

// Lookup returns the known-address entry for an address, or nil when
// none exists. Only infrastructure failures surface as errors.
func (r *AddressResolver) Lookup(ctx context.Context, address string) (*domain.KnownAddress, error) {
	entry, err := r.store.Get(ctx, strings.ToLower(address))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup address: %w", err)
	}
	return entry, nil
}

// Seed bulk-upserts reference labels. Idempotent; safe to call on every
// startup.
func (r *AddressResolver) Seed(ctx context.Context, entries []*domain.KnownAddress) error {
	for _, e := range entries {
		if err := r.store.Upsert(ctx, e); err != nil {
			return fmt.Errorf("seed address %s: %w", e.Address, err)
		}
	}
	return nil
}
