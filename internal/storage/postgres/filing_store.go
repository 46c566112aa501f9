package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// FilingStore implements storage.FilingStore using PostgreSQL.
type FilingStore struct {
	pool *Pool
}

// NewFilingStore creates a new FilingStore.
func NewFilingStore(pool *Pool) *FilingStore {
	return &FilingStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FilingStore = (*FilingStore)(nil)

// Insert adds a new filing and sets its ID.
// Returns ErrDuplicateKey if the filing URL exists.
func (s *FilingStore) Insert(ctx context.Context, f *domain.Filing) error {
	if f == nil || f.FilingURL == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO filings (
			company_name, amount_raised, filing_url, sector, filed_at, premium
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		f.CompanyName,
		f.AmountRaised,
		f.FilingURL,
		f.Sector,
		f.FiledAt,
		f.Premium,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert filing: %w", err)
	}
	return nil
}

// Recent retrieves up to limit filings ordered by filed_at DESC.
func (s *FilingStore) Recent(ctx context.Context, limit int) ([]*domain.Filing, error) {
	query := `
		SELECT id, company_name, amount_raised, filing_url, sector, filed_at, premium, created_at
		FROM filings
		ORDER BY filed_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent filings: %w", err)
	}
	defer rows.Close()

	return scanFilings(rows)
}

// GetByID retrieves a filing by its ID. Returns ErrNotFound if not exists.
func (s *FilingStore) GetByID(ctx context.Context, id int64) (*domain.Filing, error) {
	query := `
		SELECT id, company_name, amount_raised, filing_url, sector, filed_at, premium, created_at
		FROM filings
		WHERE id = $1
	`

	row := s.pool.QueryRow(ctx, query, id)
	f, err := scanFiling(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get filing by id: %w", err)
	}
	return f, nil
}

// scanFiling scans a single row into a Filing.
func scanFiling(row pgx.Row) (*domain.Filing, error) {
	var f domain.Filing
	err := row.Scan(
		&f.ID,
		&f.CompanyName,
		&f.AmountRaised,
		&f.FilingURL,
		&f.Sector,
		&f.FiledAt,
		&f.Premium,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// scanFilings scans multiple rows into a slice of Filing.
func scanFilings(rows pgx.Rows) ([]*domain.Filing, error) {
	var filings []*domain.Filing

	for rows.Next() {
		f, err := scanFiling(rows)
		if err != nil {
			return nil, fmt.Errorf("scan filing row: %w", err)
		}
		filings = append(filings, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filing rows: %w", err)
	}

	return filings, nil
}
