package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/api"
	"github.com/metsukeai/metsuke-api/internal/articles"
	"github.com/metsukeai/metsuke-api/internal/assistant"
	"github.com/metsukeai/metsuke-api/internal/auth"
	"github.com/metsukeai/metsuke-api/internal/cache"
	"github.com/metsukeai/metsuke-api/internal/config"
	"github.com/metsukeai/metsuke-api/internal/database"
	"github.com/metsukeai/metsuke-api/internal/logger"
	"github.com/metsukeai/metsuke-api/internal/middleware"
	"github.com/metsukeai/metsuke-api/internal/news"
	"github.com/metsukeai/metsuke-api/internal/repository"
	"github.com/metsukeai/metsuke-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Postgres
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Postgres")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Postgres")
		}
	}()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// News cache store
	var newsStore cache.NewsStore
	newsStore, err = cache.NewRedisStore(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory news cache")
		newsStore = cache.NewMemoryStore()
	}
	defer func() {
		if err := newsStore.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing news cache store")
		}
	}()

	// Object storage
	objectStorage, err := storage.NewS3Storage(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Services
	authService := auth.NewService(userRepo, cfg)
	articleService := articles.NewService(articleRepo, objectStorage)
	newsClient := news.NewClient(news.ClientConfig{
		BaseURL:  cfg.NewsAPIBaseURL,
		APIKey:   cfg.NewsAPIKey,
		Category: cfg.NewsCategory,
		Language: cfg.NewsLanguage,
		Country:  cfg.NewsCountry,
		PageSize: cfg.NewsPageSize,
		Timeout:  cfg.NewsFetchTimeout,
	})
	aggregator := news.NewAggregator(newsClient, newsStore, news.AggregatorConfig{
		TargetCount: cfg.NewsTargetCount,
		MaxPages:    cfg.NewsMaxPages,
		CutoffHour:  cfg.NewsCutoffHour,
	})
	responder := assistant.NewScripted(cfg.AssistantName, cfg.AssistantDelay, cfg.AssistantImageAPI)

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	api.SetupRoutes(app, api.Deps{
		Config:     cfg,
		Auth:       authService,
		Users:      userRepo,
		Chats:      chatRepo,
		Articles:   articleService,
		Aggregator: aggregator,
		Responder:  responder,
		Storage:    objectStorage,
	})

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
