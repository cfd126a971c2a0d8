package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"newsroom/internal/domain"
	"newsroom/internal/logger"
)

// Export formats.
const (
	FormatNDJSON = "ndjson"
	FormatCSV    = "csv"
)

// ExportPageSize is how many articles are fetched per store call.
const ExportPageSize = 100

// ArticleLister is the subset of ArticleServiceInterface used by exports.
type ArticleLister interface {
	ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
}

// ExportService writes articles out in bulk.
type ExportService struct {
	articles ArticleLister
	pageSize int
}

// NewExportService creates a new ExportService.
func NewExportService(articles ArticleLister) *ExportService {
	return &ExportService{articles: articles, pageSize: ExportPageSize}
}

var csvHeader = []string{
	"id", "title", "excerpt", "content", "author", "published_at", "image_url", "category",
	"tags", "status", "read_time", "featured", "picks_for_you", "created_at", "updated_at",
}

// Export writes every article matching filter to w, newest first, and
// returns how many were written. filter.Skip and filter.Limit are ignored.
func (s *ExportService) Export(ctx context.Context, filter domain.ArticleFilter, format string, w io.Writer) (int, error) {
	var write func(domain.Article) error
	var flush func() error

	switch format {
	case FormatNDJSON:
		encoder := json.NewEncoder(w)
		write = func(a domain.Article) error { return encoder.Encode(a) }
		flush = func() error { return nil }
	case FormatCSV:
		writer := csv.NewWriter(w)
		if err := writer.Write(csvHeader); err != nil {
			return 0, fmt.Errorf("write header: %w", err)
		}
		write = func(a domain.Article) error { return writer.Write(csvRecord(a)) }
		flush = func() error {
			writer.Flush()
			return writer.Error()
		}
	default:
		return 0, domain.NewValidationError("format", "must_be_ndjson_or_csv")
	}

	start := time.Now()
	count := 0
	filter.Limit = s.pageSize
	filter.Skip = 0

	for {
		page, err := s.articles.ListArticles(ctx, filter)
		if err != nil {
			return count, fmt.Errorf("list articles: %w", err)
		}
		for _, a := range page {
			if err := write(a); err != nil {
				return count, fmt.Errorf("write article %s: %w", a.ID, err)
			}
			count++
		}
		if len(page) < s.pageSize {
			break
		}
		filter.Skip += s.pageSize
	}

	if err := flush(); err != nil {
		return count, fmt.Errorf("flush: %w", err)
	}

	logger.Info("Export finished",
		slog.String("format", format),
		slog.Int("count", count),
		slog.Duration("duration", time.Since(start).Round(time.Millisecond)))

	return count, nil
}

func csvRecord(a domain.Article) []string {
	return []string{
		a.ID,
		a.Title,
		a.Excerpt,
		a.Content,
		a.Author,
		a.PublishedAt.Format(time.RFC3339Nano),
		a.ImageURL,
		a.Category,
		strings.Join(a.Tags, "|"),
		string(a.Status),
		strconv.Itoa(a.ReadTime),
		strconv.FormatBool(a.Featured),
		strconv.FormatBool(a.PicksForYou),
		a.CreatedAt.Format(time.RFC3339Nano),
		a.UpdatedAt.Format(time.RFC3339Nano),
	}
}
