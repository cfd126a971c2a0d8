package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"newsroom/internal/domain"
)

// ArticleColumns lists the articles table columns in scan order.
var ArticleColumns = []string{
	"id", "title", "excerpt", "content", "author", "published_at", "image_url",
	"category", "tags", "status", "read_time", "featured", "picks_for_you",
	"created_at", "updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQL renders the filter as a PostgreSQL select over the articles table.
func SQL(f domain.ArticleFilter) sq.SelectBuilder {
	b := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(ArticleColumns...).
		From("articles")

	if f.HasCategory() {
		b = b.Where(sq.ILike{"category": containsPattern(f.Category)})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": string(f.Status)})
	}
	if f.Featured != nil {
		b = b.Where(sq.Eq{"featured": *f.Featured})
	}
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		b = b.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"excerpt": pattern},
			sq.ILike{"author": pattern},
			sq.Expr("EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE ?)", pattern),
		})
	}

	return b.
		OrderBy("published_at DESC", "id DESC").
		Offset(uint64(f.EffectiveSkip())).
		Limit(uint64(f.EffectiveLimit()))
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
