package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// UnlockStore implements storage.UnlockStore using PostgreSQL.
type UnlockStore struct {
	pool *Pool
}

// NewUnlockStore creates a new UnlockStore.
func NewUnlockStore(pool *Pool) *UnlockStore {
	return &UnlockStore{pool: pool}
}

// Compile-time interface check.
var _ storage.UnlockStore = (*UnlockStore)(nil)

// Insert adds a new unlock record and sets its ID.
// Returns ErrDuplicateKey if (user, item kind, item id) exists.
func (s *UnlockStore) Insert(ctx context.Context, u *domain.UnlockRecord) error {
	if u == nil || u.UserWallet == "" || !u.ItemKind.Valid() {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO user_unlocks (user_wallet, item_kind, item_id, tx_hash, amount_paid, unlocked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.pool.QueryRow(ctx, query,
		u.UserWallet,
		string(u.ItemKind),
		u.ItemID,
		u.TxHash,
		u.AmountPaid,
		u.UnlockedAt,
	).Scan(&u.ID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert unlock: %w", err)
	}
	return nil
}

// Exists reports whether the user has a paid unlock for the item.
func (s *UnlockStore) Exists(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_unlocks
			WHERE user_wallet = $1 AND item_kind = $2 AND item_id = $3
		)
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, userWallet, string(kind), itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("unlock exists: %w", err)
	}
	return exists, nil
}

// ByUser retrieves all unlocks for a user ordered by unlocked_at DESC.
func (s *UnlockStore) ByUser(ctx context.Context, userWallet string) ([]*domain.UnlockRecord, error) {
	query := `
		SELECT id, user_wallet, item_kind, item_id, tx_hash, amount_paid, unlocked_at
		FROM user_unlocks
		WHERE user_wallet = $1
		ORDER BY unlocked_at DESC, id DESC
	`

	rows, err := s.pool.Query(ctx, query, userWallet)
	if err != nil {
		return nil, fmt.Errorf("unlocks by user: %w", err)
	}
	defer rows.Close()

	var unlocks []*domain.UnlockRecord
	for rows.Next() {
		u, err := scanUnlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unlock row: %w", err)
		}
		unlocks = append(unlocks, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unlock rows: %w", err)
	}
	return unlocks, nil
}

// scanUnlock scans a single row into an UnlockRecord.
func scanUnlock(row pgx.Row) (*domain.UnlockRecord, error) {
	var u domain.UnlockRecord
	var kind string
	err := row.Scan(&u.ID, &u.UserWallet, &kind, &u.ItemID, &u.TxHash, &u.AmountPaid, &u.UnlockedAt)
	if err != nil {
		return nil, err
	}
	u.ItemKind = domain.ItemKind(kind)
	return &u, nil
}
