package repository

import (
	"context"

	"newsroom/internal/domain"
)

// ArticleRepository defines methods for article data access.
//
// Implementations return domain.ErrNotFound for missing ids (including ids the
// backend cannot parse) and wrap connectivity failures in domain.ErrStoreUnavailable.
type ArticleRepository interface {
	// List returns the page of articles matching the filter, newest first.
	List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	// Get returns a single article by id.
	Get(ctx context.Context, id string) (*domain.Article, error)
	// Create persists a new article and returns it with store-assigned fields.
	Create(ctx context.Context, article domain.Article) (*domain.Article, error)
	// Replace overwrites every mutable field of an existing article.
	Replace(ctx context.Context, id string, article domain.Article) (*domain.Article, error)
	// Delete removes an article.
	Delete(ctx context.Context, id string) error
	// CountByStatus returns the number of articles per status.
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}
