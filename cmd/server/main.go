package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"newsroom/internal/config"
	"newsroom/internal/handler"
	"newsroom/internal/logger"
	"newsroom/internal/metrics"
	"newsroom/internal/service"
	"newsroom/internal/store"
	"newsroom/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Init(os.Stdout, cfg.LogLevel)

	// Open the article store
	st, err := store.Open(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to open article store",
			slog.String("store", cfg.StoreDriver),
			slog.String("error", err.Error()))
	}

	// Start database pool metrics collector
	if st.Pool != nil {
		poolStatsCollector := metrics.NewPoolStatsCollector(st.Pool)
		poolStatsCollector.Start(15 * time.Second)
		defer poolStatsCollector.Stop()
	}

	// Initialize services
	articleService := service.NewArticleService(st.Articles, validator.NewValidator())
	categoryService := service.NewCategoryService()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.Handlers{
		Articles:   handler.NewArticleHandler(articleService),
		Categories: handler.NewCategoryHandler(categoryService),
		Health:     handler.NewHealthHandler(st.Articles, st.Name),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort),
			slog.String("store", st.Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	// Close the store once in-flight requests have drained
	if err := st.Close(ctx); err != nil {
		logger.Error("Store close error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
