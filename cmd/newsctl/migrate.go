package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"newsroom/internal/config"
	"newsroom/internal/logger"
	"newsroom/internal/store"
)

func newMigrateCmd(a *app) *cobra.Command {
	var (
		dir   string
		steps int
	)

	cmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the PostgreSQL schema",
		Long:      `Run the SQL migrations in --dir against the DB_* database. Requires STORE_DRIVER=postgres.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(os.Stderr, cfg.LogLevel)
			if cfg.StoreDriver != config.StorePostgres {
				return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %q", config.StorePostgres, cfg.StoreDriver)
			}

			abs, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolve migrations dir: %w", err)
			}

			m, err := migrate.New("file://"+filepath.ToSlash(abs), store.PoolConfig(cfg).URL())
			if err != nil {
				return fmt.Errorf("create migrate instance: %w", err)
			}
			defer m.Close()

			switch {
			case args[0] == "up" && steps > 0:
				err = m.Steps(steps)
			case args[0] == "up":
				err = m.Up()
			case steps > 0:
				err = m.Steps(-steps)
			default:
				err = m.Down()
			}
			if err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}

			version, dirty, verr := m.Version()
			if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
				return fmt.Errorf("read schema version: %w", verr)
			}
			logger.Info("Migration finished",
				slog.String("direction", args[0]),
				slog.Uint64("version", uint64(version)),
				slog.Bool("dirty", dirty))
			_, err = fmt.Fprintf(a.out, "schema version %d (dirty=%t)\n", version, dirty)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory holding the .sql migrations")
	cmd.Flags().IntVar(&steps, "steps", 0, "apply or roll back only this many migrations (0 = all)")
	return cmd
}
