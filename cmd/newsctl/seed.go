package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"newsroom/internal/domain"
	"newsroom/internal/service"
	"newsroom/internal/store"
)

const (
	formatYAML   = "yaml"
	formatNDJSON = "ndjson"
)

func newSeedCmd(a *app) *cobra.Command {
	var file, format string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load articles from a YAML or NDJSON file",
		Long: `Load articles from a fixture file. Each record goes through the same
validation and defaults as POST /api/articles. Invalid records are reported
and skipped.

The format is taken from the file extension (.yaml, .yml, .ndjson, .jsonl)
unless --format is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = formatFromExt(file)
			}
			if format != formatYAML && format != formatNDJSON {
				return fmt.Errorf("unsupported format %q (want yaml or ndjson)", format)
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()

			return a.withStore(cmd.Context(), func(_ *store.Store, articles *service.ArticleService) error {
				imports := service.NewImportService(articles)

				var result domain.BatchResult
				if format == formatYAML {
					result, err = imports.ImportYAML(cmd.Context(), "seed", f)
					if err != nil {
						return err
					}
				} else {
					result = imports.ImportNDJSON(cmd.Context(), "seed", f)
				}
				return a.reportBatch(result)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file to load")
	cmd.Flags().StringVar(&format, "format", "", "yaml or ndjson (default: from extension)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".ndjson", ".jsonl":
		return formatNDJSON
	default:
		return ""
	}
}

// reportBatch prints the result and fails the command when any row failed.
func (a *app) reportBatch(result domain.BatchResult) error {
	if err := a.printJSON(result); err != nil {
		return err
	}
	if result.FailedCount > 0 {
		return fmt.Errorf("%d of %d records failed", result.FailedCount, result.FailedCount+result.SuccessCount)
	}
	return nil
}
