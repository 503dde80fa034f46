package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/logger"
	"github.com/metsukeai/metsuke-api/internal/middleware"
	"github.com/metsukeai/metsuke-api/internal/repository"
	"github.com/metsukeai/metsuke-api/internal/storage"
)

type updateProfileRequest struct {
	FullName string `json:"full_name" validate:"max=100"`
	Bio      string `json:"bio" validate:"max=1000"`
}

// GetProfile handles GET /api/v1/profile
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found",
			})
		}
		logger.Get().Error().Err(err).Msg("Error loading profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	return c.JSON(user.ProfileView())
}

// UpdateProfile handles PUT /api/v1/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	userID := middleware.UserID(c)
	if err := h.users.UpdateProfile(c.Context(), userID, req.FullName, req.Bio); err != nil {
		logger.Get().Error().Err(err).Str("user_id", userID).Msg("Error updating profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	user, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	return c.JSON(user.ProfileView())
}

// UploadAvatar handles POST /api/v1/profile/avatar (multipart, field "avatar")
func (h *Handlers) UploadAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Avatar file is required",
		})
	}
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "Avatar file is too large",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read avatar file",
		})
	}
	defer file.Close()

	avatarURL, err := h.storage.Upload(c.Context(), storage.PrefixAvatars, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Avatar upload failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Avatar upload failed",
		})
	}

	userID := middleware.UserID(c)
	if err := h.users.UpdateAvatar(c.Context(), userID, avatarURL); err != nil {
		logger.Get().Error().Err(err).Str("user_id", userID).Msg("Error saving avatar URL")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save avatar",
		})
	}

	return c.JSON(fiber.Map{
		"avatar_url": avatarURL,
	})
}
