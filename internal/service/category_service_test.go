package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"newsroom/internal/domain"
	"newsroom/internal/service"
)

func TestCategoryService_ListCategories(t *testing.T) {
	svc := service.NewCategoryService()

	categories := svc.ListCategories(context.Background())
	assert.Len(t, categories, 6)
	assert.Equal(t, domain.DefaultCategories, categories)
	assert.Equal(t, domain.CategoryAll, categories[0].Slug)

	categories[1].Name = "Changed"
	assert.Equal(t, "Technology", svc.ListCategories(context.Background())[1].Name)
}
