package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/domain"
	"newsroom/internal/query"
)

// MemoryArticleRepository implements ArticleRepository in process memory.
// It is used for local development and tests.
type MemoryArticleRepository struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
	now      func() time.Time
}

// NewMemoryArticleRepository creates an empty MemoryArticleRepository.
func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{
		articles: make(map[string]domain.Article),
		now:      time.Now,
	}
}

// List returns matching articles, newest first.
func (r *MemoryArticleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	all := make([]domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		all = append(all, clone(a))
	}
	r.mu.RUnlock()

	return query.Apply(filter, all), nil
}

// Get returns an article by id.
func (r *MemoryArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := clone(a)
	return &out, nil
}

// Create stores a new article under a fresh UUID.
func (r *MemoryArticleRepository) Create(ctx context.Context, article domain.Article) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := r.now().UTC()
	article.ID = uuid.New().String()
	article.CreatedAt = now
	article.UpdatedAt = now

	r.mu.Lock()
	r.articles[article.ID] = clone(article)
	r.mu.Unlock()

	return &article, nil
}

// Replace overwrites every mutable field of an existing article.
func (r *MemoryArticleRepository) Replace(ctx context.Context, id string, article domain.Article) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	article.ID = id
	article.CreatedAt = existing.CreatedAt
	article.UpdatedAt = r.now().UTC()
	r.articles[id] = clone(article)

	return &article, nil
}

// Delete removes an article.
func (r *MemoryArticleRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

// CountByStatus returns the number of articles per status.
func (r *MemoryArticleRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.Status]int)
	for _, a := range r.articles {
		counts[a.Status]++
	}
	return counts, nil
}

// Ping always succeeds.
func (r *MemoryArticleRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func clone(a domain.Article) domain.Article {
	if a.Tags != nil {
		a.Tags = append([]string{}, a.Tags...)
	}
	return a
}
