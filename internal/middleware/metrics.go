// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newsroom/internal/metrics"
)

// UnmatchedRoute labels requests that hit no registered route, so arbitrary
// client paths never become label values.
const UnmatchedRoute = "unmatched"

// unobserved lists the scrape and health check routes left out of HTTP metrics.
var unobserved = map[string]struct{}{
	"/metrics": {},
	"/live":    {},
	"/ready":   {},
}

// Metrics records request count, latency and in-flight gauge per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, skip := unobserved[c.FullPath()]; skip {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
