package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// QuoteStore implements storage.QuoteStore using PostgreSQL.
type QuoteStore struct {
	pool *Pool
}

// NewQuoteStore creates a new QuoteStore.
func NewQuoteStore(pool *Pool) *QuoteStore {
	return &QuoteStore{pool: pool}
}

// Compile-time interface check.
var _ storage.QuoteStore = (*QuoteStore)(nil)

// Upsert replaces the row for the quote's symbol wholesale.
func (s *QuoteStore) Upsert(ctx context.Context, q *domain.Quote) error {
	if q == nil || q.Symbol == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO quotes (symbol, price, change_24h, volume_24h, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (symbol) DO UPDATE SET
			price = EXCLUDED.price,
			change_24h = EXCLUDED.change_24h,
			volume_24h = EXCLUDED.volume_24h,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query, q.Symbol, q.Price, q.Change24h, q.Volume24h, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert quote: %w", err)
	}
	return nil
}

// GetBySymbol retrieves the latest quote for a symbol.
// Returns ErrNotFound if not exists.
func (s *QuoteStore) GetBySymbol(ctx context.Context, symbol string) (*domain.Quote, error) {
	query := `
		SELECT symbol, price, change_24h, volume_24h, updated_at
		FROM quotes
		WHERE symbol = $1
	`

	row := s.pool.QueryRow(ctx, query, symbol)
	q, err := scanQuote(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get quote by symbol: %w", err)
	}
	return q, nil
}

// All retrieves all quotes ordered by symbol ASC.
func (s *QuoteStore) All(ctx context.Context) ([]*domain.Quote, error) {
	query := `
		SELECT symbol, price, change_24h, volume_24h, updated_at
		FROM quotes
		ORDER BY symbol ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("all quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*domain.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote row: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote rows: %w", err)
	}
	return quotes, nil
}

// scanQuote scans a single row into a Quote.
func scanQuote(row pgx.Row) (*domain.Quote, error) {
	var q domain.Quote
	err := row.Scan(&q.Symbol, &q.Price, &q.Change24h, &q.Volume24h, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
