package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain"
	"newsroom/internal/mocks"
	"newsroom/internal/service"
)

func TestImportService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("creates valid rows and records invalid ones", func(t *testing.T) {
		articles := newService()
		importer := service.NewImportService(articles)

		bad := validInput("bad", t2)
		bad.Title = ""
		bad.ReadTime = 0

		result := importer.Import(ctx, "seed", []domain.ArticleInput{
			validInput("first", t1),
			bad,
			validInput("third", t3),
		})

		assert.Equal(t, 2, result.SuccessCount)
		assert.Equal(t, 1, result.FailedCount)
		assert.Len(t, result.Created, 2)
		assert.Equal(t, []domain.RecordError{
			{Row: 2, Field: "readTime", Reason: "read_time_required"},
			{Row: 2, Field: "title", Reason: "title_required"},
		}, result.Errors)

		listed, err := articles.ListArticles(ctx, domain.NewArticleFilter())
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("store unavailable stops the run", func(t *testing.T) {
		creator := mocks.NewMockArticleServiceInterface(t)
		creator.EXPECT().
			CreateArticle(mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("create article: %w", domain.ErrStoreUnavailable)).
			Once()

		result := service.NewImportService(creator).Import(ctx, "seed", []domain.ArticleInput{
			validInput("a", t1),
			validInput("b", t2),
		})

		assert.Equal(t, 0, result.SuccessCount)
		assert.Equal(t, 1, result.FailedCount)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 1, result.Errors[0].Row)
		assert.Equal(t, "unknown", result.Errors[0].Field)
	})

	t.Run("cancelled context stops before the first row", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		creator := mocks.NewMockArticleServiceInterface(t)
		result := service.NewImportService(creator).Import(cctx, "seed", []domain.ArticleInput{validInput("a", t1)})

		assert.Equal(t, 1, result.FailedCount)
		assert.Equal(t, "context", result.Errors[0].Field)
	})
}

func TestImportService_ImportNDJSON(t *testing.T) {
	ctx := context.Background()

	ndjson := strings.Join([]string{
		`{"title":"One","excerpt":"e","content":"c","author":"a","imageUrl":"/i.jpg","category":"Science","readTime":3,"status":"published"}`,
		``,
		`{"title":"Two",`,
		`{"title":"Three","excerpt":"e","content":"c","author":"a","imageUrl":"/i.jpg","category":"Science","readTime":"3"}`,
		`{"title":"Four","excerpt":"e","content":"c","author":"a","imageUrl":"/i.jpg","category":"Science","readTime":1,"tags":["space"]}`,
	}, "\n")

	articles := newService()
	result := service.NewImportService(articles).ImportNDJSON(ctx, "ndjson", strings.NewReader(ndjson))

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "record", result.Errors[0].Field)
	assert.Equal(t, 4, result.Errors[1].Row)

	stats, err := articles.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Published)
	assert.Equal(t, 1, stats.Drafts)
}

func TestImportService_ImportYAML(t *testing.T) {
	ctx := context.Background()

	t.Run("sequence of articles", func(t *testing.T) {
		doc := `
- title: The Future of AI
  excerpt: Exploring how artificial intelligence is reshaping industries.
  content: <p>Long form body</p>
  author: Sarah Chen
  publishedAt: 2024-01-15T10:00:00Z
  imageUrl: https://images.example.com/ai.jpeg
  category: Technology
  tags: [AI, Technology]
  status: published
  readTime: 5
  featured: true
- title: Draft without date
  excerpt: Pending review.
  content: <p>Draft</p>
  author: Michael Brown
  imageUrl: /images/draft.jpg
  category: Business
  readTime: 2
`
		articles := newService()
		result, err := service.NewImportService(articles).ImportYAML(ctx, "seed", strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, 2, result.SuccessCount)
		assert.Empty(t, result.Errors)

		got, err := articles.ListArticles(ctx, domain.ArticleFilter{Status: domain.StatusPublished})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "The Future of AI", got[0].Title)
		assert.True(t, got[0].Featured)
		assert.Equal(t, 2024, got[0].PublishedAt.Year())
	})

	t.Run("empty document", func(t *testing.T) {
		creator := mocks.NewMockArticleServiceInterface(t)
		result, err := service.NewImportService(creator).ImportYAML(ctx, "seed", strings.NewReader(""))
		require.NoError(t, err)
		assert.Zero(t, result.SuccessCount)
	})

	t.Run("not a sequence", func(t *testing.T) {
		creator := mocks.NewMockArticleServiceInterface(t)
		_, err := service.NewImportService(creator).ImportYAML(ctx, "seed", strings.NewReader("title: lonely"))
		assert.ErrorContains(t, err, "decode yaml")
	})
}
