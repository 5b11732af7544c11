package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/formbricks/answers/internal/api/handlers"
	"github.com/formbricks/answers/internal/api/middleware"
	"github.com/formbricks/answers/internal/config"
	"github.com/formbricks/answers/internal/googleai"
	"github.com/formbricks/answers/internal/observability"
	"github.com/formbricks/answers/internal/openai"
	"github.com/formbricks/answers/internal/repository"
	"github.com/formbricks/answers/internal/service"
	"github.com/formbricks/answers/pkg/cache"
	"github.com/formbricks/answers/pkg/database"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Configure slog with the log level from config
	setupLogging(cfg.LogLevel)

	// Initialize database connection
	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize the embedding client for the configured provider
	embeddingClient, err := newEmbeddingClient(ctx, cfg)
	if err != nil {
		slog.Error("Failed to create embedding client", "error", err)
		os.Exit(1)
	}

	chatClient := openai.NewChatClient(cfg.OpenAIAPIKey, openai.WithChatModel(cfg.ChatModel))

	// Initialize repositories
	organizationsRepo := repository.NewOrganizationsRepository(db)
	documentsRepo := repository.NewDocumentsRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	unansweredRepo := repository.NewUnansweredRepository(db)

	retrievalService := service.NewRetrievalService(documentsRepo, faqRepo, slog.Default())

	var queryCache *cache.LoaderCache[[]float32]
	if cfg.QueryCacheSize > 0 {
		queryCache, err = cache.NewLoaderCache[[]float32](cfg.QueryCacheSize)
		if err != nil {
			slog.Error("Failed to create query embedding cache", "error", err)
			os.Exit(1)
		}
	}

	answerService := service.NewAnswerService(service.AnswerServiceParams{
		Organizations:   organizationsRepo,
		Retrieval:       retrievalService,
		FAQUsage:        faqRepo,
		Unanswered:      unansweredRepo,
		EmbeddingClient: embeddingClient,
		ChatClient:      chatClient,
		QueryCache:      queryCache,
		Logger:          slog.Default(),
	})
	askHandler := handlers.NewAskHandler(answerService)

	statsService := service.NewStatsService(organizationsRepo, documentsRepo, faqRepo, unansweredRepo)
	statsHandler := handlers.NewStatsHandler(statsService)

	healthHandler := handlers.NewHealthHandler()

	// Set up public endpoints (no authentication required)
	publicMux := http.NewServeMux()
	publicMux.HandleFunc("GET /health", healthHandler.Check)

	// Set up protected endpoints (authentication required)
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /v1/ask", askHandler.Ask)
	protectedMux.HandleFunc("GET /v1/organizations/{id}/stats", statsHandler.Get)

	protectedHandler := middleware.Auth(cfg.APIKey)(protectedMux)

	// Combine both handlers
	mainMux := http.NewServeMux()
	mainMux.Handle("/v1/", protectedHandler)
	mainMux.Handle("/", publicMux) // Catch-all for public routes (/health, etc.)

	// Logging runs inside RequestID so access logs carry the request_id attribute
	handler := middleware.RequestID(middleware.Logging(mainMux))

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}

// newEmbeddingClient builds the provider-specific embedding client and wraps
// it with the configured rate limiter.
func newEmbeddingClient(ctx context.Context, cfg *config.Config) (service.EmbeddingClient, error) {
	var client service.EmbeddingClient

	switch cfg.EmbeddingProvider {
	case config.EmbeddingProviderGoogle:
		googleClient, err := googleai.NewClient(ctx, cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}

		client = googleClient
	default:
		client = openai.NewClient(cfg.OpenAIAPIKey)
	}

	return service.NewRateLimitedEmbeddingClient(client, cfg.EmbeddingRateLimit), nil
}

// setupLogging configures slog with the specified log level and installs the
// trace-context handler so request_id (and trace ids when present) appear in logs.
func setupLogging(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := observability.NewTraceContextHandler(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(slog.New(handler))
}
