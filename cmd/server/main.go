package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amro/movies/internal/config"
	"github.com/amro/movies/internal/database"
	"github.com/amro/movies/internal/handlers"
	"github.com/amro/movies/internal/middleware"
	"github.com/amro/movies/internal/repository"
	"github.com/amro/movies/internal/tmdb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := log.New(os.Stdout, "[movies] ", log.LstdFlags|log.Lshortfile)
	logger.Printf("Starting movies server in %s mode", cfg.Server.Env)

	// Initialize Redis connection
	redisClient, err := database.NewRedisClient(database.RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       0,
		TLS:      cfg.Redis.TLS,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize TMDB client and repository
	tmdbClient := tmdb.NewClient(tmdb.Config{
		BearerToken: cfg.TMDB.BearerToken,
		BaseURL:     cfg.TMDB.BaseURL,
	})
	repo := repository.NewTMDBMovieRepository(tmdbClient, repository.Config{
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		IMDBBaseURL:  cfg.TMDB.IMDBBaseURL,
		TrendingTTL:  cfg.TMDB.TrendingTTL,
	})

	// Initialize rate limiter (100 req/min in production, unlimited in local/dev)
	maxRequests := 1000 // High limit for local/dev
	if cfg.IsProduction() {
		maxRequests = 100
	}
	rateLimiter := middleware.NewRateLimiter(redisClient.Client, maxRequests, time.Minute, cfg.IsProduction())

	// Initialize handlers
	movieHandler := handlers.NewMovieHandler(repo, logger)

	// Set up HTTP router
	mux := http.NewServeMux()
	mux.Handle("GET /api/movies/trending", rateLimiter.Limit(http.HandlerFunc(movieHandler.Trending)))
	mux.Handle("GET /api/movies/{id}", rateLimiter.Limit(http.HandlerFunc(movieHandler.Details)))

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := redisClient.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"unhealthy","redis":"down"}`)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","redis":"up"}`)
	})

	// Wrap with logging middleware
	handler := middleware.Logger(logger)(mux)

	// Create HTTP server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Println("Server exited")
}
