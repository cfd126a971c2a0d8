package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"SERVER_PORT",
	"HTTP_READ_TIMEOUT",
	"HTTP_WRITE_TIMEOUT",
	"HTTP_IDLE_TIMEOUT",
	"HTTP_SHUTDOWN_TIMEOUT",
	"STORE_DRIVER",
	"MONGODB_URI",
	"MONGODB_DATABASE",
	"MONGODB_TIMEOUT",
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"DB_SSL_MODE",
	"DB_MAX_CONNS",
	"DB_MIN_CONNS",
	"LOG_LEVEL",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, StoreMongo, cfg.StoreDriver)
		assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
		assert.Empty(t, cfg.MongoDatabase)
		assert.Equal(t, 10*time.Second, cfg.MongoTimeout)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, 5432, cfg.DBPort)
		assert.Equal(t, "newsroom", cfg.DBName)
		assert.Equal(t, int32(25), cfg.DBMaxConns)
		assert.Equal(t, int32(5), cfg.DBMinConns)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("custom values from environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_SSL_MODE", "require")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MIN_CONNS", "10")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, StorePostgres, cfg.StoreDriver)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, 5433, cfg.DBPort)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "require", cfg.DBSSLMode)
		assert.Equal(t, int32(50), cfg.DBMaxConns)
		assert.Equal(t, int32(10), cfg.DBMinConns)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("duration fields have correct defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_DRIVER", "memory")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
		assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Minute, cfg.DBHealthCheckPeriod)
	})

	t.Run("invalid numbers and durations fall back to defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("DB_PORT", "not-a-port")
		t.Setenv("MONGODB_TIMEOUT", "soon")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 5432, cfg.DBPort)
		assert.Equal(t, 10*time.Second, cfg.MongoTimeout)
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "mongo driver without uri",
			env:     map[string]string{},
			wantErr: "MONGODB_URI is required",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"STORE_DRIVER": "sqlite"},
			wantErr: "STORE_DRIVER must be one of",
		},
		{
			name:    "postgres pool bounds",
			env:     map[string]string{"STORE_DRIVER": "postgres", "DB_MAX_CONNS": "2", "DB_MIN_CONNS": "4"},
			wantErr: "DB_MIN_CONNS must not exceed DB_MAX_CONNS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
