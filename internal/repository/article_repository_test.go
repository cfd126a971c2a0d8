package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain"
	"newsroom/internal/repository"
)

var baseTime = time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

func newArticle(title string, offset time.Duration) domain.Article {
	return domain.Article{
		Title:       title,
		Excerpt:     "Excerpt for " + title,
		Content:     "<p>" + title + "</p>",
		Author:      "Alex Thompson",
		PublishedAt: baseTime.Add(offset),
		ImageURL:    "https://images.example.com/" + title + ".jpeg",
		Category:    "Technology",
		Tags:        []string{"AI", "Innovation"},
		Status:      domain.StatusPublished,
		ReadTime:    4,
	}
}

func listIDs(t *testing.T, repo repository.ArticleRepository, f domain.ArticleFilter) []string {
	t.Helper()
	articles, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

// runArticleRepositoryContract exercises behaviour every backend must share.
// setup must return an empty repository.
func runArticleRepositoryContract(t *testing.T, setup func(t *testing.T) repository.ArticleRepository) {
	ctx := context.Background()

	t.Run("create then get returns the stored document", func(t *testing.T) {
		repo := setup(t)
		in := newArticle("create", 0)
		in.PicksForYou = true

		created, err := repo.Create(ctx, in)
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, in.Title, got.Title)
		assert.Equal(t, in.Tags, got.Tags)
		assert.Equal(t, in.Status, got.Status)
		assert.True(t, in.PublishedAt.Equal(got.PublishedAt))
		assert.True(t, got.PicksForYou)
	})

	t.Run("create and get agree on sub-millisecond times", func(t *testing.T) {
		repo := setup(t)
		in := newArticle("precise", 0)
		in.PublishedAt = baseTime.Add(750*time.Millisecond + 123456*time.Nanosecond)

		created, err := repo.Create(ctx, in)
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, created.PublishedAt.Equal(got.PublishedAt), "create %v, get %v", created.PublishedAt, got.PublishedAt)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "create %v, get %v", created.CreatedAt, got.CreatedAt)
		assert.True(t, created.UpdatedAt.Equal(got.UpdatedAt), "create %v, get %v", created.UpdatedAt, got.UpdatedAt)
		assert.WithinDuration(t, in.PublishedAt, got.PublishedAt, time.Millisecond)
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		repo := setup(t)
		_, err := repo.Get(ctx, "not-an-id")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		created, err := repo.Create(ctx, newArticle("x", 0))
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.Get(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list orders by publishedAt descending", func(t *testing.T) {
		repo := setup(t)
		a1, err := repo.Create(ctx, newArticle("one", 3*time.Hour))
		require.NoError(t, err)
		a2, err := repo.Create(ctx, newArticle("two", 1*time.Hour))
		require.NoError(t, err)
		a3, err := repo.Create(ctx, newArticle("three", 2*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, []string{a1.ID, a3.ID, a2.ID}, listIDs(t, repo, domain.NewArticleFilter()))
		assert.Equal(t, []string{a3.ID}, listIDs(t, repo, domain.ArticleFilter{Skip: 1, Limit: 1}))
	})

	t.Run("list applies filters", func(t *testing.T) {
		repo := setup(t)
		tech := newArticle("Quantum chips", 3*time.Hour)
		tech.Featured = true

		biz := newArticle("Markets", 2*time.Hour)
		biz.Category = "Business"
		biz.Tags = []string{"Economy"}
		biz.Author = "Maria Rodriguez"

		draft := newArticle("Draft story", time.Hour)
		draft.Category = "Science"
		draft.Status = domain.StatusDraft
		draft.Tags = []string{"space"}

		aTech, err := repo.Create(ctx, tech)
		require.NoError(t, err)
		aBiz, err := repo.Create(ctx, biz)
		require.NoError(t, err)
		aDraft, err := repo.Create(ctx, draft)
		require.NoError(t, err)

		featured := true
		assert.Equal(t, []string{aTech.ID}, listIDs(t, repo, domain.ArticleFilter{Category: "TECH"}))
		assert.Equal(t, []string{aTech.ID, aBiz.ID, aDraft.ID}, listIDs(t, repo, domain.ArticleFilter{Category: "all"}))
		assert.Equal(t, []string{aDraft.ID}, listIDs(t, repo, domain.ArticleFilter{Status: domain.StatusDraft}))
		assert.Equal(t, []string{aTech.ID}, listIDs(t, repo, domain.ArticleFilter{Featured: &featured}))
		assert.Equal(t, []string{aBiz.ID}, listIDs(t, repo, domain.ArticleFilter{Search: "rodriguez"}))
		assert.Equal(t, []string{aDraft.ID}, listIDs(t, repo, domain.ArticleFilter{Search: "SPA"}))
		assert.Equal(t, []string{aTech.ID, aBiz.ID}, listIDs(t, repo, domain.ArticleFilter{Search: "EXCERPT FOR", Status: domain.StatusPublished}))
		assert.Empty(t, listIDs(t, repo, domain.ArticleFilter{Search: ".*"}))
	})

	t.Run("replace overwrites every mutable field", func(t *testing.T) {
		repo := setup(t)
		in := newArticle("original", 0)
		in.Featured = true
		created, err := repo.Create(ctx, in)
		require.NoError(t, err)

		replacement := newArticle("replaced", time.Hour)
		replacement.Tags = []string{}
		replacement.Status = domain.StatusDraft

		updated, err := repo.Replace(ctx, created.ID, replacement)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "replaced", updated.Title)
		assert.False(t, updated.Featured)
		assert.Empty(t, updated.Tags)
		assert.Equal(t, domain.StatusDraft, updated.Status)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "replaced", got.Title)
		assert.False(t, got.Featured)
	})

	t.Run("replace unknown id is not found", func(t *testing.T) {
		repo := setup(t)
		_, err := repo.Replace(ctx, "missing", newArticle("x", 0))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete twice reports not found", func(t *testing.T) {
		repo := setup(t)
		created, err := repo.Create(ctx, newArticle("gone", 0))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)
	})

	t.Run("count by status", func(t *testing.T) {
		repo := setup(t)
		draft := newArticle("d", 0)
		draft.Status = domain.StatusDraft
		for _, a := range []domain.Article{newArticle("a", 0), newArticle("b", 0), draft} {
			_, err := repo.Create(ctx, a)
			require.NoError(t, err)
		}

		counts, err := repo.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, counts[domain.StatusPublished])
		assert.Equal(t, 1, counts[domain.StatusDraft])
	})

	t.Run("ping", func(t *testing.T) {
		repo := setup(t)
		assert.NoError(t, repo.Ping(ctx))
	})
}

func TestMemoryArticleRepository(t *testing.T) {
	runArticleRepositoryContract(t, func(t *testing.T) repository.ArticleRepository {
		return repository.NewMemoryArticleRepository()
	})
}

func TestMemoryArticleRepository_ReturnsCopies(t *testing.T) {
	repo := repository.NewMemoryArticleRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newArticle("copy", 0))
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "AI", again.Tags[0])
}

func TestMemoryArticleRepository_CancelledContext(t *testing.T) {
	repo := repository.NewMemoryArticleRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx, domain.NewArticleFilter())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPostgresArticleRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	repo := repository.NewPostgresArticleRepository(testDB.Pool)
	runArticleRepositoryContract(t, func(t *testing.T) repository.ArticleRepository {
		testDB.TruncateTables(t, "articles")
		return repo
	})
}

func TestMongoArticleRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testMongo := SetupTestMongo(t)
	defer testMongo.Cleanup(t)

	repo := repository.NewMongoArticleRepository(testMongo.Handle)
	runArticleRepositoryContract(t, func(t *testing.T) repository.ArticleRepository {
		testMongo.DropArticles(t)
		return repo
	})

	assert.True(t, testMongo.Handle.Connected())
}
