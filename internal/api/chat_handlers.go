package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/logger"
	"github.com/metsukeai/metsuke-api/internal/middleware"
	"github.com/metsukeai/metsuke-api/internal/models"
	"github.com/metsukeai/metsuke-api/internal/repository"
)

type createSessionRequest struct {
	Title string `json:"title" validate:"max=200"`
}

type postMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// CreateChatSession handles POST /api/v1/chat/sessions
func (h *Handlers) CreateChatSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	session := &models.ChatSession{
		UserID: middleware.UserID(c),
		Title:  req.Title,
	}
	if err := h.chats.CreateSession(c.Context(), session); err != nil {
		logger.Get().Error().Err(err).Msg("Error creating chat session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// ListChatSessions handles GET /api/v1/chat/sessions
func (h *Handlers) ListChatSessions(c *fiber.Ctx) error {
	sessions, err := h.chats.ListSessions(c.Context(), middleware.UserID(c))
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error listing chat sessions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load sessions",
		})
	}

	return c.JSON(fiber.Map{
		"items": sessions,
	})
}

// ListChatMessages handles GET /api/v1/chat/sessions/:id/messages
func (h *Handlers) ListChatMessages(c *fiber.Ctx) error {
	session, ok := h.ownedSession(c)
	if !ok {
		return nil
	}

	messages, err := h.chats.ListMessages(c.Context(), session.ID)
	if err != nil {
		logger.Get().Error().Err(err).Str("session_id", session.ID).Msg("Error listing chat messages")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load messages",
		})
	}

	return c.JSON(fiber.Map{
		"items": messages,
	})
}

// PostChatMessage handles POST /api/v1/chat/sessions/:id/messages. The user
// turn is appended first, the assistant reply second, so ordering in the
// session stays append-only even if the responder fails midway.
func (h *Handlers) PostChatMessage(c *fiber.Ctx) error {
	session, ok := h.ownedSession(c)
	if !ok {
		return nil
	}

	var req postMessageRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	userMsg := &models.ChatMessage{
		SessionID: session.ID,
		Role:      models.RoleUser,
		Kind:      models.KindText,
		Content:   req.Content,
	}
	if err := h.chats.AppendMessage(c.Context(), userMsg); err != nil {
		logger.Get().Error().Err(err).Msg("Error saving user message")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	reply, err := h.responder.Respond(c.Context(), req.Content)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Assistant responder failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Assistant is unavailable",
		})
	}

	assistantMsg := &models.ChatMessage{
		SessionID: session.ID,
		Role:      models.RoleAssistant,
		Kind:      reply.Kind,
		Content:   reply.Content,
		MediaURL:  reply.MediaURL,
	}
	if err := h.chats.AppendMessage(c.Context(), assistantMsg); err != nil {
		logger.Get().Error().Err(err).Msg("Error saving assistant message")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save reply",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"messages": []*models.ChatMessage{userMsg, assistantMsg},
	})
}

// ownedSession loads the :id session and enforces ownership. Replies and
// returns ok=false when the request was already answered.
func (h *Handlers) ownedSession(c *fiber.Ctx) (*models.ChatSession, bool) {
	session, err := h.chats.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
			return nil, false
		}
		logger.Get().Error().Err(err).Msg("Error loading chat session")
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session",
		})
		return nil, false
	}

	if session.UserID != middleware.UserID(c) {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
		return nil, false
	}

	return session, true
}
