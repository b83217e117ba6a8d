package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobcrawl/internal/api/handlers"
	"jobcrawl/internal/api/middleware"
	"jobcrawl/internal/config"
	"jobcrawl/internal/crawler"
	"jobcrawl/pkg/utils"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, svc *crawler.Service, cache *utils.RedisClient) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Crawls page through results under a rate limit and need far longer
	// than ordinary requests.
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 5*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(cache))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(cfg, cache))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		search := v1.Group("/search")
		{
			search.POST("", handlers.SearchHandler(cfg, svc))
			search.POST("/url", handlers.BuildURLHandler(cfg))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Job Search Crawler",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
