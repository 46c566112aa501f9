package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// TransferAlertStore implements storage.TransferAlertStore using PostgreSQL.
type TransferAlertStore struct {
	pool *Pool
}

// NewTransferAlertStore creates a new TransferAlertStore.
func NewTransferAlertStore(pool *Pool) *TransferAlertStore {
	return &TransferAlertStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransferAlertStore = (*TransferAlertStore)(nil)

// Insert adds a new alert and sets its ID.
// Returns ErrDuplicateKey if the tx hash exists.
func (s *TransferAlertStore) Insert(ctx context.Context, a *domain.TransferAlert) error {
	if a == nil || a.TxHash == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO transfer_alerts (
			tx_hash, sender_address, sender_label, receiver_address, receiver_label,
			token_symbol, token_address, amount, pool_address, tradeable, observed_at, premium
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		a.TxHash,
		a.SenderAddress,
		a.SenderLabel,
		a.ReceiverAddress,
		a.ReceiverLabel,
		a.TokenSymbol,
		a.TokenAddress,
		a.Amount,
		a.PoolAddress,
		a.Tradeable,
		a.ObservedAt,
		a.Premium,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert transfer alert: %w", err)
	}
	return nil
}

// Recent retrieves up to limit alerts ordered by observed_at DESC.
func (s *TransferAlertStore) Recent(ctx context.Context, limit int) ([]*domain.TransferAlert, error) {
	query := `
		SELECT id, tx_hash, sender_address, sender_label, receiver_address, receiver_label,
		       token_symbol, token_address, amount, pool_address, tradeable, observed_at, premium, created_at
		FROM transfer_alerts
		ORDER BY observed_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transfer alerts: %w", err)
	}
	defer rows.Close()

	return scanTransferAlerts(rows)
}

// GetByID retrieves an alert by its ID. Returns ErrNotFound if not exists.
func (s *TransferAlertStore) GetByID(ctx context.Context, id int64) (*domain.TransferAlert, error) {
	query := `
		SELECT id, tx_hash, sender_address, sender_label, receiver_address, receiver_label,
		       token_symbol, token_address, amount, pool_address, tradeable, observed_at, premium, created_at
		FROM transfer_alerts
		WHERE id = $1
	`

	row := s.pool.QueryRow(ctx, query, id)
	a, err := scanTransferAlert(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get transfer alert by id: %w", err)
	}
	return a, nil
}

// scanTransferAlert scans a single row into a TransferAlert.
func scanTransferAlert(row pgx.Row) (*domain.TransferAlert, error) {
	var a domain.TransferAlert
	err := row.Scan(
		&a.ID,
		&a.TxHash,
		&a.SenderAddress,
		&a.SenderLabel,
		&a.ReceiverAddress,
		&a.ReceiverLabel,
		&a.TokenSymbol,
		&a.TokenAddress,
		&a.Amount,
		&a.PoolAddress,
		&a.Tradeable,
		&a.ObservedAt,
		&a.Premium,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// scanTransferAlerts scans multiple rows into a slice of TransferAlert.
func scanTransferAlerts(rows pgx.Rows) ([]*domain.TransferAlert, error) {
	var alerts []*domain.TransferAlert

	for rows.Next() {
		a, err := scanTransferAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer alert row: %w", err)
		}
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer alert rows: %w", err)
	}

	return alerts, nil
}
