package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/auth"
	"github.com/metsukeai/metsuke-api/internal/logger"
	"github.com/metsukeai/metsuke-api/internal/middleware"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	user, tokens, err := h.auth.Register(c.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		logger.Get().Error().Err(err).Str("email", req.Email).Msg("Registration failed")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Could not create account",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":          user.ProfileView(),
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	user, tokens, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}
		logger.Get().Error().Err(err).Msg("Login failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed",
		})
	}

	return c.JSON(fiber.Map{
		"user":          user.ProfileView(),
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	user, tokens, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired refresh token",
			})
		}
		logger.Get().Error().Err(err).Msg("Token refresh failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Token refresh failed",
		})
	}

	return c.JSON(fiber.Map{
		"user":          user.ProfileView(),
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}
