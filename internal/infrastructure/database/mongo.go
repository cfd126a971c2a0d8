package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"newsroom/internal/logger"
)

// DefaultMongoDatabase is used when neither the config nor the URI names a database.
const DefaultMongoDatabase = "newsroom"

// MongoConfig holds the configuration for the MongoDB handle.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// SetupFunc runs once against a freshly connected database, e.g. to create indexes.
type SetupFunc func(ctx context.Context, db *mongo.Database) error

// Mongo is a lazily connected MongoDB handle.
//
// The first call to Database connects, pings and runs the setup functions;
// later calls reuse the same client. A failed attempt is not cached, so the
// next caller retries. The handle is owned by the caller that created it and
// must be closed with Close.
type Mongo struct {
	cfg   MongoConfig
	setup []SetupFunc

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo creates a handle without connecting.
func NewMongo(cfg MongoConfig, setup ...SetupFunc) (*Mongo, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}

	cs, err := connstring.ParseAndValidate(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("parse mongo uri: %w", err)
	}
	if cfg.Database == "" {
		cfg.Database = cs.Database
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	return &Mongo{cfg: cfg, setup: setup}, nil
}

// DatabaseName returns the resolved database name.
func (m *Mongo) DatabaseName() string {
	return m.cfg.Database
}

// Database returns the connected database, connecting on first use.
func (m *Mongo) Database(ctx context.Context) (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	start := time.Now()
	connectCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(m.cfg.URI).
		SetServerSelectionTimeout(m.cfg.ConnectTimeout)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(m.cfg.Database)
	for _, fn := range m.setup {
		if err := fn(connectCtx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("setup mongo: %w", err)
		}
	}

	m.client = client
	m.db = db

	logger.Info("MongoDB connection established",
		slog.String("database", m.cfg.Database),
		slog.Duration("duration", time.Since(start)))

	return db, nil
}

// Collection returns a collection of the connected database.
func (m *Mongo) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := m.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Ping checks connectivity, connecting first if needed.
func (m *Mongo) Ping(ctx context.Context) error {
	db, err := m.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, nil)
}

// Connected reports whether a connection has been established.
func (m *Mongo) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}

// Close disconnects the client if one was created.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}
