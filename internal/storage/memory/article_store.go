package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
)

// ArticleStore is an in-memory implementation of storage.ArticleStore.
type ArticleStore struct {
	mu     sync.RWMutex
	nextID int64
	byURL  map[string]*domain.Article
	byID   map[int64]*domain.Article
}

// NewArticleStore creates a new in-memory article store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		nextID: 1,
		byURL:  make(map[string]*domain.Article),
		byID:   make(map[int64]*domain.Article),
	}
}

// Insert adds a new article and sets its ID.
// Returns ErrDuplicateKey if the URL exists.
func (s *ArticleStore) Insert(_ context.Context, a *domain.Article) error {
	if a == nil || a.URL == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byURL[a.URL]; exists {
		return storage.ErrDuplicateKey
	}

	a.ID = s.nextID
	s.nextID++

	articleCopy := *a
	s.byURL[a.URL] = &articleCopy
	s.byID[a.ID] = &articleCopy
	return nil
}

// Recent retrieves up to limit articles ordered by published_at DESC, newest id first.
func (s *ArticleStore) Recent(_ context.Context, limit int) ([]*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Article, 0, len(s.byID))
	for _, a := range s.byID {
		articleCopy := *a
		result = append(result, &articleCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].PublishedAt.Equal(result[j].PublishedAt) {
			return result[i].PublishedAt.After(result[j].PublishedAt)
		}
		return result[i].ID > result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetByID retrieves an article by its ID. Returns ErrNotFound if not exists.
func (s *ArticleStore) GetByID(_ context.Context, id int64) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.byID[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	articleCopy := *a
	return &articleCopy, nil
}

// Verify interface compliance at compile time.
var _ storage.ArticleStore = (*ArticleStore)(nil)
