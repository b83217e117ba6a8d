package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobcrawl/internal/api/routes"
	"jobcrawl/internal/config"
	"jobcrawl/internal/crawler"
	"jobcrawl/internal/crawler/fetch"
	"jobcrawl/internal/logging"
	"jobcrawl/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseGlobalLogger()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting job search crawler")

	// Initialize fetch engine
	fetcher, err := fetch.New(cfg.Crawler.Engine, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize fetch engine", map[string]interface{}{"error": err.Error()})
	}
	defer fetcher.Cleanup()

	// Initialize Redis cache (optional)
	var cache *utils.RedisClient
	if cfg.Redis.Enabled {
		cache = utils.NewRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		if err := cache.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, continuing without job cache", map[string]interface{}{
				"error": err.Error(),
			})
			cache = nil
		}
		cancel()
		if cache != nil {
			defer cache.Close()
		}
	}

	svc := crawler.NewService(cfg, fetcher, cache)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, svc, cache)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Info("Server stopped", map[string]interface{}{"reason": err.Error()})
	}
}
