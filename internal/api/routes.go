package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/metsukeai/metsuke-api/internal/middleware"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, deps Deps) {
	handlers := NewHandlers(deps)

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	requireAuth := middleware.NewAuth(middleware.AuthConfig{
		Validator: deps.Auth.ValidateAccessToken,
	})

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API group with versioning
	api := app.Group("/api/v1")

	// Health check endpoint
	api.Get("/health", handlers.HealthCheck)

	// Auth endpoints
	authGroup := api.Group("/auth")
	{
		authGroup.Post("/register", handlers.Register)
		authGroup.Post("/login", handlers.Login)
		authGroup.Post("/refresh", handlers.Refresh)
	}

	// Explore feed
	api.Get("/news", handlers.GetExploreFeed)

	// Community articles
	articleGroup := api.Group("/articles")
	{
		articleGroup.Get("", handlers.ListArticles)
		articleGroup.Get("/:slug", handlers.GetArticle)
		articleGroup.Post("", requireAuth, handlers.SubmitArticle)
	}

	// Profile (owner only)
	profileGroup := api.Group("/profile", requireAuth)
	{
		profileGroup.Get("", handlers.GetProfile)
		profileGroup.Put("", handlers.UpdateProfile)
		profileGroup.Post("/avatar", handlers.UploadAvatar)
	}

	// Chat
	chatGroup := api.Group("/chat", requireAuth)
	{
		chatGroup.Post("/sessions", handlers.CreateChatSession)
		chatGroup.Get("/sessions", handlers.ListChatSessions)
		chatGroup.Get("/sessions/:id/messages", handlers.ListChatMessages)
		chatGroup.Post("/sessions/:id/messages", handlers.PostChatMessage)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
