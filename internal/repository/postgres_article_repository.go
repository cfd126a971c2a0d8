package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsroom/internal/domain"
	"newsroom/internal/query"
)

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool, now: time.Now}
}

const returningColumns = `id, title, excerpt, content, author, published_at, image_url,
	category, tags, status, read_time, featured, picks_for_you, created_at, updated_at`

// List returns articles matching the filter, newest first.
func (r *PostgresArticleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	sql, args, err := query.SQL(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, pgError("query articles", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, pgError("read articles", err)
	}
	return articles, nil
}

// Get returns an article by its UUID.
func (r *PostgresArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT `+returningColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if err != nil {
		return nil, pgError("get article", err)
	}
	return &a, nil
}

// Create inserts a new article row.
func (r *PostgresArticleRepository) Create(ctx context.Context, article domain.Article) (*domain.Article, error) {
	now := r.now().UTC().Truncate(time.Microsecond)
	article.ID = uuid.New().String()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO articles (id, title, excerpt, content, author, published_at, image_url,
			category, tags, status, read_time, featured, picks_for_you, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING `+returningColumns,
		article.ID, article.Title, article.Excerpt, article.Content, article.Author,
		article.PublishedAt.UTC(), article.ImageURL, article.Category, tagsOrEmpty(article.Tags),
		string(article.Status), article.ReadTime, article.Featured, article.PicksForYou, now,
	)

	created, err := scanArticle(row)
	if err != nil {
		return nil, pgError("insert article", err)
	}
	return &created, nil
}

// Replace overwrites every mutable column of an existing article.
func (r *PostgresArticleRepository) Replace(ctx context.Context, id string, article domain.Article) (*domain.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	now := r.now().UTC().Truncate(time.Microsecond)
	row := r.pool.QueryRow(ctx, `
		UPDATE articles SET
			title = $2, excerpt = $3, content = $4, author = $5, published_at = $6,
			image_url = $7, category = $8, tags = $9, status = $10, read_time = $11,
			featured = $12, picks_for_you = $13, updated_at = $14
		WHERE id = $1
		RETURNING `+returningColumns,
		id, article.Title, article.Excerpt, article.Content, article.Author,
		article.PublishedAt.UTC(), article.ImageURL, article.Category, tagsOrEmpty(article.Tags),
		string(article.Status), article.ReadTime, article.Featured, article.PicksForYou, now,
	)

	updated, err := scanArticle(row)
	if err != nil {
		return nil, pgError("update article", err)
	}
	return &updated, nil
}

// Delete removes an article row.
func (r *PostgresArticleRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return pgError("delete article", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus groups articles by status.
func (r *PostgresArticleRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM articles GROUP BY status`)
	if err != nil {
		return nil, pgError("count articles", err)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.Status(status)] = count
	}
	return counts, rows.Err()
}

// Ping checks PostgreSQL connectivity.
func (r *PostgresArticleRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func scanArticle(row pgx.Row) (domain.Article, error) {
	var a domain.Article
	var status string
	err := row.Scan(&a.ID, &a.Title, &a.Excerpt, &a.Content, &a.Author, &a.PublishedAt, &a.ImageURL,
		&a.Category, &a.Tags, &status, &a.ReadTime, &a.Featured, &a.PicksForYou, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return a, err
	}
	a.Status = domain.Status(status)
	a.Tags = tagsOrEmpty(a.Tags)
	a.PublishedAt = a.PublishedAt.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// pgError maps pgx errors onto the domain error taxonomy.
func pgError(op string, err error) error {
	var connectErr *pgconn.ConnectError
	var netErr net.Error

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrNotFound
	case errors.As(err, &connectErr), errors.As(err, &netErr), pgconn.Timeout(err):
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
