package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/logger"
)

// ErrorHandler is the central fiber error handler. No error is fatal to the
// process; everything maps to a JSON body and a status code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
