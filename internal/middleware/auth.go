package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/logger"
)

// UserIDKey is the Locals key holding the authenticated user id.
const UserIDKey = "userID"

// AuthConfig defines the config for the auth middleware
type AuthConfig struct {
	// Skip defines a function to skip middleware.
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Validator verifies the bearer token and returns the user id.
	// Required.
	Validator func(token string) (string, error)

	// ErrorHandler defines a function which is executed for an invalid token.
	// Optional. Default: 401 Invalid or missing token
	ErrorHandler fiber.ErrorHandler
}

var authConfigDefault = AuthConfig{
	ErrorHandler: func(c *fiber.Ctx, err error) error {
		logger.Get().Warn().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Err(err).
			Msg("Authentication failed")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing token",
		})
	},
}

// NewAuth creates a middleware that requires a valid bearer access token and
// stores the authenticated user id in Locals under UserIDKey.
func NewAuth(config AuthConfig) fiber.Handler {
	cfg := config
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = authConfigDefault.ErrorHandler
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return cfg.ErrorHandler(c, errors.New("missing authorization header"))
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := cfg.Validator(token)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(UserIDKey, userID)

		return c.Next()
	}
}

// UserID returns the authenticated user id stored by NewAuth, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
