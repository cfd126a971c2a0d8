// Command newsctl is the admin CLI for the newsroom article store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"newsroom/internal/config"
	"newsroom/internal/logger"
	"newsroom/internal/service"
	"newsroom/internal/store"
	"newsroom/internal/validator"
)

// app carries what every subcommand needs. Tests swap the loaders.
type app struct {
	out        io.Writer
	client     *http.Client
	loadConfig func() (*config.Config, error)
	openStore  func(ctx context.Context, cfg *config.Config) (*store.Store, error)
}

func newApp(out io.Writer) *app {
	return &app{
		out:        out,
		loadConfig: config.Load,
		openStore:  store.Open,
	}
}

// withStore loads config, opens the store and hands the caller an article
// service over it. The store is closed when fn returns.
func (a *app) withStore(ctx context.Context, fn func(st *store.Store, articles *service.ArticleService) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(os.Stderr, cfg.LogLevel)

	st, err := a.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close(context.Background())
	}()

	return fn(st, service.NewArticleService(st.Articles, validator.NewValidator()))
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "newsctl",
		Short: "Administer the newsroom article store",
		Long: `newsctl loads, exports and inspects articles in the store selected by
STORE_DRIVER (mongo, postgres or memory), using the same environment
variables as the API server.

Available subcommands:
  seed        - Load articles from a YAML or NDJSON file
  import-feed - Import an RSS or Atom feed as articles
  export      - Write articles as NDJSON or CSV
  stats       - Print article counts
  migrate     - Apply or roll back the PostgreSQL schema`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newSeedCmd(a),
		newImportFeedCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
		newMigrateCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd(newApp(os.Stdout)).Execute(); err != nil {
		os.Exit(1)
	}
}
