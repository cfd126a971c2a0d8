package service

import (
	"context"

	"newsroom/internal/domain"
	"newsroom/internal/feed"
)

// ArticleServiceInterface defines the interface for article operations.
// Used for dependency injection and mocking in tests.
type ArticleServiceInterface interface {
	// ListArticles returns the page of articles matching the filter, newest first.
	ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	// GetArticle retrieves an article by ID.
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	// CreateArticle validates and stores a new article.
	CreateArticle(ctx context.Context, input domain.ArticleInput) (*domain.Article, error)
	// UpdateArticle replaces every mutable field of an existing article.
	UpdateArticle(ctx context.Context, id string, input domain.ArticleInput) (*domain.Article, error)
	// DeleteArticle removes an article.
	DeleteArticle(ctx context.Context, id string) error
	// Stats returns article counts by status.
	Stats(ctx context.Context) (*domain.ArticleStats, error)
	// Feed lists articles and partitions them into display buckets.
	Feed(ctx context.Context, filter domain.ArticleFilter) (*feed.Feed, error)
}

// CategoryServiceInterface defines the interface for category operations.
type CategoryServiceInterface interface {
	// ListCategories returns the fixed category list.
	ListCategories(ctx context.Context) []domain.Category
}
