package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/articles"
	"github.com/metsukeai/metsuke-api/internal/assistant"
	"github.com/metsukeai/metsuke-api/internal/auth"
	"github.com/metsukeai/metsuke-api/internal/config"
	"github.com/metsukeai/metsuke-api/internal/news"
	"github.com/metsukeai/metsuke-api/internal/repository"
	"github.com/metsukeai/metsuke-api/internal/storage"
)

// Deps bundles everything the handlers need.
type Deps struct {
	Config     *config.Config
	Auth       *auth.Service
	Users      repository.UserRepository
	Chats      repository.ChatRepository
	Articles   *articles.Service
	Aggregator *news.Aggregator
	Responder  assistant.Responder
	Storage    storage.ObjectStorage
}

type Handlers struct {
	cfg        *config.Config
	auth       *auth.Service
	users      repository.UserRepository
	chats      repository.ChatRepository
	articles   *articles.Service
	aggregator *news.Aggregator
	responder  assistant.Responder
	storage    storage.ObjectStorage
}

func NewHandlers(deps Deps) *Handlers {
	return &Handlers{
		cfg:        deps.Config,
		auth:       deps.Auth,
		users:      deps.Users,
		chats:      deps.Chats,
		articles:   deps.Articles,
		aggregator: deps.Aggregator,
		responder:  deps.Responder,
		storage:    deps.Storage,
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
