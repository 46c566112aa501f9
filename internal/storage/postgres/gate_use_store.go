package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// GateUseStore implements storage.GateUseStore using PostgreSQL.
// Rows are written only inside LedgerStore.ConsumeFreeUnlock's transaction.
type GateUseStore struct {
	pool *Pool
}

// NewGateUseStore creates a new GateUseStore.
func NewGateUseStore(pool *Pool) *GateUseStore {
	return &GateUseStore{pool: pool}
}

// Compile-time interface check.
var _ storage.GateUseStore = (*GateUseStore)(nil)

// Exists reports whether the user has consumed a free unlock for the item.
func (s *GateUseStore) Exists(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM gate_uses
			WHERE user_wallet = $1 AND item_kind = $2 AND item_id = $3
		)
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, userWallet, string(kind), itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("gate use exists: %w", err)
	}
	return exists, nil
}

// ByUser retrieves all gate uses for a user ordered by used_at DESC.
func (s *GateUseStore) ByUser(ctx context.Context, userWallet string) ([]*domain.GateUse, error) {
	query := `
		SELECT id, user_wallet, item_kind, item_id, used_at
		FROM gate_uses
		WHERE user_wallet = $1
		ORDER BY used_at DESC, id DESC
	`

	rows, err := s.pool.Query(ctx, query, userWallet)
	if err != nil {
		return nil, fmt.Errorf("gate uses by user: %w", err)
	}
	defer rows.Close()

	var uses []*domain.GateUse
	for rows.Next() {
		g, err := scanGateUse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gate use row: %w", err)
		}
		uses = append(uses, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gate use rows: %w", err)
	}
	return uses, nil
}

// scanGateUse scans a single row into a GateUse.
func scanGateUse(row pgx.Row) (*domain.GateUse, error) {
	var g domain.GateUse
	var kind string
	err := row.Scan(&g.ID, &g.UserWallet, &kind, &g.ItemID, &g.UsedAt)
	if err != nil {
		return nil, err
	}
	g.ItemKind = domain.ItemKind(kind)
	return &g, nil
}
