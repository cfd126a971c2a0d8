package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"newsroom/internal/domain"
	"newsroom/internal/service"
	"newsroom/internal/store"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		output, format string
		filter         domain.ArticleFilter
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write articles as NDJSON or CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if filter.Status != "" && !domain.IsValidStatus(filter.Status) {
				return fmt.Errorf("invalid status %q", filter.Status)
			}

			var w io.Writer = a.out
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			return a.withStore(cmd.Context(), func(_ *store.Store, articles *service.ArticleService) error {
				_, err := service.NewExportService(articles).Export(cmd.Context(), filter, format, w)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&format, "format", service.FormatNDJSON, "ndjson or csv")
	cmd.Flags().StringVar(&filter.Category, "category", "", "only articles whose category contains this text")
	cmd.Flags().StringVar((*string)(&filter.Status), "status", "", "only articles with this status")
	return cmd
}
