package service

import (
	"context"

	"newsroom/internal/domain"
)

// CategoryService serves the fixed category list. Categories are not read
// from the article store.
type CategoryService struct{}

// NewCategoryService creates a new CategoryService.
func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

// ListCategories returns a copy of domain.DefaultCategories.
func (s *CategoryService) ListCategories(_ context.Context) []domain.Category {
	out := make([]domain.Category, len(domain.DefaultCategories))
	copy(out, domain.DefaultCategories)
	return out
}
