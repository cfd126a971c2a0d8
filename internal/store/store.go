// Package store opens the article store selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"newsroom/internal/config"
	"newsroom/internal/infrastructure/database"
	"newsroom/internal/logger"
	"newsroom/internal/metrics"
	"newsroom/internal/repository"
)

// Store bundles the article repository with the connection that backs it.
type Store struct {
	Articles repository.ArticleRepository
	Name     string

	// Pool is set only for the postgres driver.
	Pool  *pgxpool.Pool
	mongo *database.Mongo
}

// PoolConfig maps the DB_* settings onto a pool configuration.
func PoolConfig(cfg *config.Config) database.PoolConfig {
	return database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	}
}

// Open creates the repository for cfg.StoreDriver.
//
// The mongo driver does not touch the network here; the handle connects on
// first use. The postgres driver connects and pings before returning.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		handle, err := database.NewMongo(database.MongoConfig{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			ConnectTimeout: cfg.MongoTimeout,
		}, repository.EnsureArticleIndexes)
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		logger.Info("Using MongoDB article store",
			slog.String("database", handle.DatabaseName()))
		return &Store{
			Articles: repository.NewMongoArticleRepository(handle),
			Name:     config.StoreMongo,
			mongo:    handle,
		}, nil

	case config.StorePostgres:
		pool, err := database.NewPostgres(ctx, PoolConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return &Store{
			Articles: repository.NewPostgresArticleRepository(pool),
			Name:     config.StorePostgres,
			Pool:     pool,
		}, nil

	case config.StoreMemory:
		logger.Warn("Using in-memory article store; data is lost on exit")
		return &Store{
			Articles: repository.NewMemoryArticleRepository(),
			Name:     config.StoreMemory,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases the underlying connection, if any.
func (s *Store) Close(ctx context.Context) error {
	if s.Pool != nil {
		metrics.LogPoolStats(s.Pool)
		s.Pool.Close()
		logger.Info("PostgreSQL pool closed")
	}
	if s.mongo != nil {
		if err := s.mongo.Close(ctx); err != nil {
			return fmt.Errorf("close mongo: %w", err)
		}
		logger.Info("MongoDB connection closed")
	}
	return nil
}
