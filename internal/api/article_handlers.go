package api

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/metsukeai/metsuke-api/internal/articles"
	"github.com/metsukeai/metsuke-api/internal/logger"
	"github.com/metsukeai/metsuke-api/internal/middleware"
	"github.com/metsukeai/metsuke-api/internal/models"
	"github.com/metsukeai/metsuke-api/internal/repository"
)

// ListArticles handles GET /api/v1/articles?category=&limit=&offset=
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	category := c.Query("category", models.CategoryAll)

	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	items, err := h.articles.List(c.Context(), category, limit, offset)
	if err != nil {
		logger.Get().Error().Err(err).Str("category", category).Msg("Error listing articles")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load articles",
		})
	}

	return c.JSON(fiber.Map{
		"items": items,
		"total": len(items),
	})
}

// GetArticle handles GET /api/v1/articles/:slug
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Article slug is required",
		})
	}

	article, err := h.articles.Get(c.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Article not found",
			})
		}
		logger.Get().Error().Err(err).Str("slug", slug).Msg("Error loading article")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load article",
		})
	}

	return c.JSON(article)
}

// SubmitArticle handles POST /api/v1/articles (multipart form). The form
// fields mirror the submission modal: title, abstract, content, category,
// tags (comma separated), plus optional cover_image and pdf files.
func (h *Handlers) SubmitArticle(c *fiber.Ctx) error {
	input := articles.SubmitInput{
		AuthorID: middleware.UserID(c),
		Title:    c.FormValue("title"),
		Abstract: c.FormValue("abstract"),
		Content:  c.FormValue("content"),
		Category: c.FormValue("category"),
		TagsCSV:  c.FormValue("tags"),
	}

	var openedFiles []multipart.File
	defer func() {
		for _, f := range openedFiles {
			f.Close()
		}
	}()

	for _, att := range []struct {
		field string
		dst   **articles.Attachment
	}{
		{"cover_image", &input.CoverImage},
		{"pdf", &input.PDF},
	} {
		fileHeader, err := c.FormFile(att.field)
		if err != nil {
			continue // attachment not provided
		}
		if fileHeader.Size > h.cfg.MaxUploadBytes {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": "Attachment " + att.field + " is too large",
			})
		}
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not read attachment " + att.field,
			})
		}
		openedFiles = append(openedFiles, file)
		*att.dst = &articles.Attachment{
			FileName: fileHeader.Filename,
			Body:     file,
			Size:     fileHeader.Size,
		}
	}

	article, err := h.articles.Submit(c.Context(), input)
	if err != nil {
		var uploadErr *articles.UploadError
		switch {
		case errors.Is(err, articles.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.As(err, &uploadErr):
			logger.Get().Error().Err(err).Str("attachment", uploadErr.Attachment).Msg("Attachment upload failed")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": uploadErr.Error(),
			})
		default:
			logger.Get().Error().Err(err).Msg("Article submission failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to publish article",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(article)
}
