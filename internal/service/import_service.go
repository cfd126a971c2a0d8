package service

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"newsroom/internal/domain"
	"newsroom/internal/logger"
	"newsroom/internal/metrics"
	"newsroom/internal/validator"
)

const (
	// ScannerBufferSize is the initial buffer size for NDJSON scanner
	ScannerBufferSize = 64 * 1024 // 64KB
	// ScannerMaxBufferSize is the maximum buffer size for NDJSON scanner
	ScannerMaxBufferSize = 1024 * 1024 // 1MB
)

// ArticleCreator is the subset of ArticleServiceInterface used by imports.
type ArticleCreator interface {
	CreateArticle(ctx context.Context, input domain.ArticleInput) (*domain.Article, error)
}

// ImportService loads batches of articles through the article service, so
// imported rows get the same defaults and validation as API writes.
type ImportService struct {
	articles ArticleCreator
}

// NewImportService creates a new ImportService.
func NewImportService(articles ArticleCreator) *ImportService {
	return &ImportService{articles: articles}
}

// Import creates each input in order. Rows are numbered from 1. A row that
// fails validation is recorded and skipped; an unreachable store stops the run.
func (s *ImportService) Import(ctx context.Context, source string, inputs []domain.ArticleInput) domain.BatchResult {
	start := time.Now()
	result := domain.BatchResult{
		Created: make([]string, 0, len(inputs)),
	}

	for i, input := range inputs {
		row := i + 1
		if !s.importRow(ctx, row, input, &result) {
			break
		}
	}

	s.finish(source, start, &result)
	return result
}

// ImportNDJSON reads one JSON article per line. Blank lines are skipped but
// still advance the row number.
func (s *ImportService) ImportNDJSON(ctx context.Context, source string, reader io.Reader) domain.BatchResult {
	start := time.Now()
	result := domain.BatchResult{Created: []string{}}

	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, ScannerBufferSize)
	scanner.Buffer(buf, ScannerMaxBufferSize)

	rowNum := 0
	for scanner.Scan() {
		rowNum++

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var input domain.ArticleInput
		if err := json.Unmarshal([]byte(line), &input); err != nil {
			result.Errors = append(result.Errors, domain.RecordError{
				Row:    rowNum,
				Field:  "record",
				Reason: fmt.Sprintf("invalid JSON: %v", err),
			})
			result.FailedCount++
			continue
		}

		if !s.importRow(ctx, rowNum, input, &result) {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		result.Errors = append(result.Errors, domain.RecordError{
			Row:    rowNum,
			Field:  "scanner",
			Reason: fmt.Sprintf("scanner error: %v", err),
		})
		result.FailedCount++
	}

	s.finish(source, start, &result)
	return result
}

// ImportYAML decodes a YAML sequence of articles and imports it.
// A document that is not a sequence of articles fails as a whole.
func (s *ImportService) ImportYAML(ctx context.Context, source string, reader io.Reader) (domain.BatchResult, error) {
	var inputs []domain.ArticleInput
	if err := yaml.NewDecoder(reader).Decode(&inputs); err != nil && !errors.Is(err, io.EOF) {
		return domain.BatchResult{}, fmt.Errorf("decode yaml: %w", err)
	}
	return s.Import(ctx, source, inputs), nil
}

// importRow returns false when the run should stop.
func (s *ImportService) importRow(ctx context.Context, row int, input domain.ArticleInput, result *domain.BatchResult) bool {
	if err := ctx.Err(); err != nil {
		result.Errors = append(result.Errors, domain.RecordError{Row: row, Field: "context", Reason: err.Error()})
		result.FailedCount++
		return false
	}

	article, err := s.articles.CreateArticle(ctx, input)
	if err != nil {
		result.Errors = append(result.Errors, validator.ConvertValidationErrors(row, err)...)
		result.FailedCount++
		return !errors.Is(err, domain.ErrStoreUnavailable)
	}

	result.SuccessCount++
	result.Created = append(result.Created, article.ID)
	return true
}

func (s *ImportService) finish(source string, start time.Time, result *domain.BatchResult) {
	metrics.ObserveImport(source, result.SuccessCount, result.FailedCount)

	log := logger.WithFields(slog.String("source", source))
	log.Info("Import finished",
		slog.Int("success_count", result.SuccessCount),
		slog.Int("failed_count", result.FailedCount),
		slog.Duration("duration", time.Since(start).Round(time.Millisecond)))

	maxSamples := min(3, len(result.Errors))
	for _, e := range result.Errors[:maxSamples] {
		log.Warn("Import error sample",
			slog.Int("row", e.Row),
			slog.String("field", e.Field),
			slog.String("reason", e.Reason))
	}
}
