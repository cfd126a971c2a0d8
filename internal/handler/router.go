package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsroom/internal/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Articles   *ArticleHandler
	Categories *CategoryHandler
	Health     *HealthHandler
}

// NewRouter builds the gin engine with middleware, ops endpoints and the /api routes.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())

	// Health and metrics endpoints
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)
	router.GET("/live", h.Health.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		articles := api.Group("/articles")
		{
			articles.GET("", h.Articles.ListArticles)
			articles.POST("", h.Articles.CreateArticle)
			articles.GET("/:id", h.Articles.GetArticle)
			articles.PUT("/:id", h.Articles.UpdateArticle)
			articles.DELETE("/:id", h.Articles.DeleteArticle)
		}

		api.GET("/categories", h.Categories.ListCategories)
		api.GET("/feed", h.Articles.Feed)
		api.GET("/stats", h.Articles.Stats)
	}

	router.NoMethod(methodNotAllowed(router))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRouteNotFound})
	})

	return router
}

// methodNotAllowed answers 405 with an Allow header listing the methods
// registered for the requested path.
func methodNotAllowed(router *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowed := allowedMethods(router.Routes(), c.Request.URL.Path); len(allowed) > 0 {
			c.Header("Allow", strings.Join(allowed, ", "))
		}
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": msgMethodNotAllowed})
	}
}

func allowedMethods(routes gin.RoutesInfo, path string) []string {
	seen := make(map[string]bool)
	var methods []string
	for _, r := range routes {
		if !seen[r.Method] && matchPath(r.Path, path) {
			seen[r.Method] = true
			methods = append(methods, r.Method)
		}
	}
	sort.Strings(methods)
	return methods
}

// matchPath reports whether path fits pattern, where a ":name" segment
// matches any single non-empty segment.
func matchPath(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
