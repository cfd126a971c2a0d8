package main

import (
	"github.com/spf13/cobra"

	"newsroom/internal/service"
	"newsroom/internal/store"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print article counts by status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(_ *store.Store, articles *service.ArticleService) error {
				stats, err := articles.Stats(cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(stats)
			})
		},
	}
}
