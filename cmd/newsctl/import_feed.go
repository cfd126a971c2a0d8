package main

import (
	"errors"

	"github.com/spf13/cobra"

	"newsroom/internal/domain"
	"newsroom/internal/ingest"
	"newsroom/internal/service"
	"newsroom/internal/store"
)

func newImportFeedCmd(a *app) *cobra.Command {
	var (
		feedURL string
		opts    ingest.Options
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "import-feed",
		Short: "Import an RSS or Atom feed as articles",
		Long: `Fetch a syndication feed and create one article per item. Imported
articles are drafts unless --publish is set. Items without an image or
text are rejected by validation and reported.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if feedURL == "" {
				return errors.New("--url is required")
			}
			if publish {
				opts.Status = domain.StatusPublished
			}

			importer := ingest.NewFeedImporter(a.client)
			inputs, err := importer.FetchURL(cmd.Context(), feedURL, opts)
			if err != nil {
				return err
			}

			return a.withStore(cmd.Context(), func(_ *store.Store, articles *service.ArticleService) error {
				result := service.NewImportService(articles).Import(cmd.Context(), "feed", inputs)
				return a.reportBatch(result)
			})
		},
	}

	cmd.Flags().StringVar(&feedURL, "url", "", "feed URL")
	cmd.Flags().StringVar(&opts.Category, "category", "", "category assigned to every imported article")
	cmd.Flags().StringVar(&opts.Author, "author", "", "author used when the feed names none")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "import at most this many items (0 = all)")
	cmd.Flags().BoolVar(&publish, "publish", false, "create articles as published instead of draft")
	return cmd
}
