package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// NFTReceiptStore implements storage.NFTReceiptStore using PostgreSQL.
type NFTReceiptStore struct {
	pool *Pool
}

// NewNFTReceiptStore creates a new NFTReceiptStore.
func NewNFTReceiptStore(pool *Pool) *NFTReceiptStore {
	return &NFTReceiptStore{pool: pool}
}

// Compile-time interface check.
var _ storage.NFTReceiptStore = (*NFTReceiptStore)(nil)

// Insert adds a minted receipt. Returns ErrDuplicateKey if the token id exists.
func (s *NFTReceiptStore) Insert(ctx context.Context, r *domain.NFTReceipt) error {
	if r == nil || r.UserWallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO nft_receipts (token_id, user_wallet, item_kind, item_id, price_paid, tx_hash, minted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		r.TokenID,
		r.UserWallet,
		string(r.ItemKind),
		r.ItemID,
		r.PricePaid,
		r.TxHash,
		r.MintedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert nft receipt: %w", err)
	}
	return nil
}

// ByUser retrieves all receipts for a user ordered by minted_at DESC.
func (s *NFTReceiptStore) ByUser(ctx context.Context, userWallet string) ([]*domain.NFTReceipt, error) {
	query := `
		SELECT token_id, user_wallet, item_kind, item_id, price_paid, tx_hash, minted_at
		FROM nft_receipts
		WHERE user_wallet = $1
		ORDER BY minted_at DESC, token_id DESC
	`

	rows, err := s.pool.Query(ctx, query, userWallet)
	if err != nil {
		return nil, fmt.Errorf("nft receipts by user: %w", err)
	}
	defer rows.Close()

	var receipts []*domain.NFTReceipt
	for rows.Next() {
		r, err := scanNFTReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nft receipt row: %w", err)
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nft receipt rows: %w", err)
	}
	return receipts, nil
}

// scanNFTReceipt scans a single row into an NFTReceipt.
func scanNFTReceipt(row pgx.Row) (*domain.NFTReceipt, error) {
	var r domain.NFTReceipt
	var kind string
	err := row.Scan(&r.TokenID, &r.UserWallet, &kind, &r.ItemID, &r.PricePaid, &r.TxHash, &r.MintedAt)
	if err != nil {
		return nil, err
	}
	r.ItemKind = domain.ItemKind(kind)
	return &r, nil
}
