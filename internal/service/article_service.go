package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsroom/internal/domain"
	"newsroom/internal/feed"
	"newsroom/internal/logger"
	"newsroom/internal/metrics"
	"newsroom/internal/repository"
	"newsroom/internal/validator"
)

// ArticleService implements article CRUD on top of an ArticleRepository.
// Every operation is a single store call, so a failed request leaves no partial write.
type ArticleService struct {
	repo      repository.ArticleRepository
	validator *validator.Validator
	now       func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(repo repository.ArticleRepository, v *validator.Validator) *ArticleService {
	return &ArticleService{
		repo:      repo,
		validator: v,
		now:       time.Now,
	}
}

// ListArticles returns the filtered page. An empty result is not an error.
func (s *ArticleService) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	timer := metrics.NewTimer()
	articles, err := s.repo.List(ctx, filter)
	s.observe("list", timer, err)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// GetArticle returns domain.ErrNotFound when no article has the id.
func (s *ArticleService) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	timer := metrics.NewTimer()
	article, err := s.repo.Get(ctx, id)
	s.observe("get", timer, err)
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}
	return article, nil
}

// CreateArticle normalizes and validates input, then stores it.
// publishedAt defaults to now and status to draft.
func (s *ArticleService) CreateArticle(ctx context.Context, input domain.ArticleInput) (*domain.Article, error) {
	normalized := input.Normalize(s.now())
	if err := s.validator.ValidateArticle(&normalized); err != nil {
		metrics.ObserveArticleOperation("create", metrics.ResultInvalid)
		return nil, err
	}

	timer := metrics.NewTimer()
	article, err := s.repo.Create(ctx, normalized.ToArticle())
	s.observe("create", timer, err)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	logger.WithArticleID(article.ID).InfoContext(ctx, "Article created",
		slog.String("status", string(article.Status)),
		slog.String("category", article.Category))

	return article, nil
}

// UpdateArticle is a full replace: fields missing from input take the same
// defaults as on create rather than keeping their stored values.
func (s *ArticleService) UpdateArticle(ctx context.Context, id string, input domain.ArticleInput) (*domain.Article, error) {
	normalized := input.Normalize(s.now())
	if err := s.validator.ValidateArticle(&normalized); err != nil {
		metrics.ObserveArticleOperation("update", metrics.ResultInvalid)
		return nil, err
	}

	timer := metrics.NewTimer()
	article, err := s.repo.Replace(ctx, id, normalized.ToArticle())
	s.observe("update", timer, err)
	if err != nil {
		return nil, fmt.Errorf("update article %s: %w", id, err)
	}

	logger.WithArticleID(article.ID).InfoContext(ctx, "Article updated")
	return article, nil
}

// DeleteArticle removes an article. Deleting an id that no longer exists
// reports domain.ErrNotFound.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	timer := metrics.NewTimer()
	err := s.repo.Delete(ctx, id)
	s.observe("delete", timer, err)
	if err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}

	logger.WithArticleID(id).InfoContext(ctx, "Article deleted")
	return nil
}

// Stats returns total, published and draft counts.
func (s *ArticleService) Stats(ctx context.Context) (*domain.ArticleStats, error) {
	timer := metrics.NewTimer()
	counts, err := s.repo.CountByStatus(ctx)
	s.observe("stats", timer, err)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	stats := &domain.ArticleStats{
		Published: counts[domain.StatusPublished],
		Drafts:    counts[domain.StatusDraft],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// Feed lists articles for the home page and partitions them.
// Drafts are excluded unless the filter asks for a status explicitly.
func (s *ArticleService) Feed(ctx context.Context, filter domain.ArticleFilter) (*feed.Feed, error) {
	if filter.Status == "" {
		filter.Status = domain.StatusPublished
	}

	articles, err := s.ListArticles(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := feed.Partition(articles)
	return &f, nil
}

func (s *ArticleService) observe(operation string, timer *metrics.Timer, err error) {
	timer.ObserveDuration(metrics.StoreOperationDuration.WithLabelValues(operation))

	switch {
	case err == nil:
		metrics.ObserveArticleOperation(operation, metrics.ResultSuccess)
	case errors.Is(err, domain.ErrNotFound):
		metrics.ObserveArticleOperation(operation, metrics.ResultNotFound)
	default:
		metrics.ObserveArticleOperation(operation, metrics.ResultError)
	}
}
