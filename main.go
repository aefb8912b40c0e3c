package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pranathi1405/ClauseEase-AI/config"
	"github.com/Pranathi1405/ClauseEase-AI/handler"
	"github.com/Pranathi1405/ClauseEase-AI/middleware"
	"github.com/Pranathi1405/ClauseEase-AI/pkg/logger"
	"github.com/Pranathi1405/ClauseEase-AI/service"
	"github.com/Pranathi1405/ClauseEase-AI/templates"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	service.InitSessionStore(&cfg.Session)
	backend := service.NewBackendClient(&cfg.Backend)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(backend, &cfg.Session)
	uploadHandler := handler.NewUploadHandler(backend, &cfg.Upload)
	resultsHandler := handler.NewResultsHandler()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(noCacheMiddleware())                    // Session pages must not be cached
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Embedded HTML templates
	router.SetHTMLTemplate(templates.Load())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	})
	router.GET("/auth", authHandler.ShowAuth)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/register", authHandler.Register)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.SessionGate(&cfg.Session, service.GetSessionStore()))
	{
		protected.GET("/upload", uploadHandler.ShowUpload)
		protected.POST("/upload", uploadHandler.Process)
		protected.GET("/upload/status", uploadHandler.Status)
		protected.GET("/results", resultsHandler.ShowResults)
		protected.POST("/results/another", resultsHandler.UploadAnother)
		protected.POST("/logout", authHandler.Logout)
	}

	// Create server. The write timeout must outlast the backend processing
	// budget or successful uploads get cut off mid-response.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: time.Duration(cfg.Backend.TimeoutSeconds+30) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// noCacheMiddleware disables caching. Every page carries session state, so
// the browser must always revalidate.
func noCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
