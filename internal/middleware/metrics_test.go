package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"newsroom/internal/metrics"
)

func newMetricsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics())

	ok := func(status int) gin.HandlerFunc {
		return func(c *gin.Context) { c.Status(status) }
	}
	router.GET("/api/articles/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.POST("/api/articles", ok(http.StatusCreated))
	router.GET("/metrics", ok(http.StatusOK))
	router.GET("/live", ok(http.StatusOK))
	router.GET("/ready", ok(http.StatusOK))
	return router
}

func TestMetricsMiddleware(t *testing.T) {
	router := newMetricsRouter()

	tests := []struct {
		name   string
		method string
		target string
		route  string
		status string
	}{
		{"route template label", http.MethodGet, "/api/articles/65a1f0c2e4b0a1b2c3d4e5f6", "/api/articles/:id", "200"},
		{"not found from handler", http.MethodGet, "/api/articles/missing", "/api/articles/:id", "404"},
		{"post", http.MethodPost, "/api/articles", "/api/articles", "201"},
		{"unknown path", http.MethodGet, "/api/nope/123", UnmatchedRoute, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.HTTPRequestsTotal.WithLabelValues(tt.method, tt.route, tt.status)
			before := testutil.ToFloat64(counter)
			inFlight := testutil.ToFloat64(metrics.HTTPRequestsInFlight)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.status, strconv.Itoa(w.Code))
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
			assert.Equal(t, inFlight, testutil.ToFloat64(metrics.HTTPRequestsInFlight), "in-flight returns to its previous value")
		})
	}
}

func TestMetricsMiddleware_SkipsProbesAndScrapes(t *testing.T) {
	router := newMetricsRouter()

	for _, path := range []string{"/metrics", "/live", "/ready"} {
		counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, path, "200")
		before := testutil.ToFloat64(counter)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, before, testutil.ToFloat64(counter), path)
	}
}
