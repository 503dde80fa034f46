package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/logger"
)

// GetExploreFeed handles GET /api/v1/news. The feed always renders something:
// remote-source failure degrades to the fallback pool and is flagged, never
// surfaced as an error state.
func (h *Handlers) GetExploreFeed(c *fiber.Ctx) error {
	result, err := h.aggregator.Explore(c.Context())
	if err != nil {
		// Only context cancellation reaches here; the client went away.
		logger.Get().Debug().Err(err).Msg("Explore feed request cancelled")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Request cancelled",
		})
	}

	return c.JSON(fiber.Map{
		"items":      result.Items,
		"total":      len(result.Items),
		"fetched_at": result.FetchedAt,
		"degraded":   result.Degraded,
		"from_cache": result.FromCache,
	})
}
