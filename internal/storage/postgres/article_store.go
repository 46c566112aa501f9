package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// ArticleStore implements storage.ArticleStore using PostgreSQL.
type ArticleStore struct {
	pool *Pool
}

// NewArticleStore creates a new ArticleStore.
func NewArticleStore(pool *Pool) *ArticleStore {
	return &ArticleStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ArticleStore = (*ArticleStore)(nil)

// Insert adds a new article and sets its ID.
// Returns ErrDuplicateKey if the URL exists.
func (s *ArticleStore) Insert(ctx context.Context, a *domain.Article) error {
	if a == nil || a.URL == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO articles (
			title, summary, sentiment, source, url, published_at, premium
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		a.Title,
		a.Summary,
		a.Sentiment,
		a.Source,
		a.URL,
		a.PublishedAt,
		a.Premium,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Recent retrieves up to limit articles ordered by published_at DESC.
func (s *ArticleStore) Recent(ctx context.Context, limit int) ([]*domain.Article, error) {
	query := `
		SELECT id, title, summary, sentiment, source, url, published_at, premium, created_at
		FROM articles
		ORDER BY published_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// GetByID retrieves an article by its ID. Returns ErrNotFound if not exists.
func (s *ArticleStore) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	query := `
		SELECT id, title, summary, sentiment, source, url, published_at, premium, created_at
		FROM articles
		WHERE id = $1
	`

	row := s.pool.QueryRow(ctx, query, id)
	a, err := scanArticle(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get article by id: %w", err)
	}
	return a, nil
}

// scanArticle scans a single row into an Article.
func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Summary,
		&a.Sentiment,
		&a.Source,
		&a.URL,
		&a.PublishedAt,
		&a.Premium,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// scanArticles scans multiple rows into a slice of Article.
func scanArticles(rows pgx.Rows) ([]*domain.Article, error) {
	var articles []*domain.Article

	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article row: %w", err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate article rows: %w", err)
	}

	return articles, nil
}
