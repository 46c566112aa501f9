package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// LedgerStore implements storage.LedgerStore using PostgreSQL.
// Mutations run in a transaction with the balance row locked, so
// concurrent adjusts and free-unlock attempts for a user serialize.
type LedgerStore struct {
	pool *Pool
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(pool *Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LedgerStore = (*LedgerStore)(nil)

// Adjust atomically applies earn/spend to the user's balance, creating
// the row if absent. Returns ErrInsufficientBalance if the spend would
// overdraw; the transaction rolls back in that case.
func (s *LedgerStore) Adjust(ctx context.Context, userWallet string, earn, spend int64, now time.Time) (*domain.LedgerBalance, error) {
	if userWallet == "" || earn < 0 || spend < 0 {
		return nil, storage.ErrInvalidInput
	}
	userWallet = domain.NormalizeWallet(userWallet)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Ensure the row exists, then lock it.
	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_balances (user_wallet, balance, total_earned, total_spent, updated_at)
		VALUES ($1, 0, 0, 0, $2)
		ON CONFLICT (user_wallet) DO NOTHING
	`, userWallet, now)
	if err != nil {
		return nil, fmt.Errorf("ensure ledger row: %w", err)
	}

	var balance int64
	err = tx.QueryRow(ctx, `
		SELECT balance FROM ledger_balances WHERE user_wallet = $1 FOR UPDATE
	`, userWallet).Scan(&balance)
	if err != nil {
		return nil, fmt.Errorf("lock ledger row: %w", err)
	}

	if balance+earn-spend < 0 {
		return nil, storage.ErrInsufficientBalance
	}

	row := &domain.LedgerBalance{UserWallet: userWallet}
	err = tx.QueryRow(ctx, `
		UPDATE ledger_balances SET
			balance = balance + $2 - $3,
			total_earned = total_earned + $2,
			total_spent = total_spent + $3,
			updated_at = $4
		WHERE user_wallet = $1
		RETURNING balance, total_earned, total_spent, last_free_unlock, updated_at
	`, userWallet, earn, spend, now).Scan(
		&row.Balance, &row.TotalEarned, &row.TotalSpent, &row.LastFreeUnlock, &row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("adjust ledger: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return row, nil
}

// Get retrieves the balance row. Returns ErrNotFound if the user has
// never been touched.
func (s *LedgerStore) Get(ctx context.Context, userWallet string) (*domain.LedgerBalance, error) {
	query := `
		SELECT user_wallet, balance, total_earned, total_spent, last_free_unlock, updated_at
		FROM ledger_balances
		WHERE user_wallet = $1
	`

	var row domain.LedgerBalance
	err := s.pool.QueryRow(ctx, query, domain.NormalizeWallet(userWallet)).Scan(
		&row.UserWallet, &row.Balance, &row.TotalEarned, &row.TotalSpent, &row.LastFreeUnlock, &row.UpdatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get ledger balance: %w", err)
	}
	return &row, nil
}

// ConsumeFreeUnlock atomically checks the policy, stamps last_free_unlock,
// and writes the gate-use row in one transaction. The balance row is
// locked first, so two concurrent calls for the same user serialize and
// the loser sees the winner's stamp.
func (s *LedgerStore) ConsumeFreeUnlock(ctx context.Context, userWallet string, kind domain.ItemKind, itemID int64, policy domain.FreeUnlockPolicy, now time.Time) (domain.FreeUnlockOutcome, error) {
	if userWallet == "" || !kind.Valid() {
		return 0, storage.ErrInvalidInput
	}
	userWallet = domain.NormalizeWallet(userWallet)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	var lastFree *time.Time
	err = tx.QueryRow(ctx, `
		SELECT balance, last_free_unlock FROM ledger_balances
		WHERE user_wallet = $1 FOR UPDATE
	`, userWallet).Scan(&balance, &lastFree)
	if err != nil {
		if isNotFoundError(err) {
			// No ledger row means zero balance.
			return domain.FreeUnlockLowBalance, nil
		}
		return 0, fmt.Errorf("lock ledger row: %w", err)
	}

	var used bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM gate_uses
			WHERE user_wallet = $1 AND item_kind = $2 AND item_id = $3
		)
	`, userWallet, string(kind), itemID).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("check gate use: %w", err)
	}
	if used {
		return domain.FreeUnlockAlreadyUsed, nil
	}

	if balance < policy.MinBalance {
		return domain.FreeUnlockLowBalance, nil
	}
	if lastFree != nil && now.Sub(*lastFree) < policy.Cooldown {
		return domain.FreeUnlockCooldown, nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO gate_uses (user_wallet, item_kind, item_id, used_at)
		VALUES ($1, $2, $3, $4)
	`, userWallet, string(kind), itemID, now)
	if err != nil {
		if isDuplicateKeyError(err) {
			return domain.FreeUnlockAlreadyUsed, nil
		}
		return 0, fmt.Errorf("insert gate use: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE ledger_balances SET last_free_unlock = $2, updated_at = $2
		WHERE user_wallet = $1
	`, userWallet, now)
	if err != nil {
		return 0, fmt.Errorf("stamp cooldown: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return domain.FreeUnlockConsumed, nil
}
