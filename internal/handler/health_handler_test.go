package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func serveHealth(t *testing.T, h *HealthHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/live", h.Live)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy store", func(t *testing.T) {
		h := NewHealthHandler(stubPinger{}, "mongo")

		w := serveHealth(t, h, "/health")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","version":"1.0.0","services":{"mongo":"healthy"}}`, w.Body.String())

		w = serveHealth(t, h, "/ready")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	})

	t.Run("unreachable store", func(t *testing.T) {
		h := NewHealthHandler(stubPinger{err: errors.New("server selection timeout")}, "postgres")

		w := serveHealth(t, h, "/health")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unhealthy","services":{"postgres":"unhealthy"}}`, w.Body.String())

		w = serveHealth(t, h, "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("live never touches the store", func(t *testing.T) {
		h := NewHealthHandler(stubPinger{err: errors.New("down")}, "mongo")

		w := serveHealth(t, h, "/live")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
	})
}
