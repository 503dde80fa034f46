package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/metsukeai/metsuke-api/internal/models"
)

type ArticleRepositoryImpl struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) *ArticleRepositoryImpl {
	return &ArticleRepositoryImpl{db: db}
}

func (r *ArticleRepositoryImpl) Create(ctx context.Context, article *models.CommunityArticle) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	article.CreatedAt = time.Now()

	query := `
        INSERT INTO community_articles
        (id, slug, author_id, title, abstract, content, category, tags, cover_image_url, pdf_url, status, created_at)
        VALUES
        (:id, :slug, :author_id, :title, :abstract, :content, :category, :tags, :cover_image_url, :pdf_url, :status, :created_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, article)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") &&
			strings.Contains(err.Error(), "slug") {
			return fmt.Errorf("slug %s already exists: %w", article.Slug, err)
		}
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// ListPublished returns published articles newest first. The "all" sentinel
// (or empty string) disables the category filter; matching is
// case-insensitive.
func (r *ArticleRepositoryImpl) ListPublished(ctx context.Context, category string, limit, offset int) ([]models.CommunityArticle, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
        SELECT * FROM community_articles
        WHERE status = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	args := []interface{}{models.StatusPublished, limit, offset}

	if category != "" && !strings.EqualFold(category, models.CategoryAll) {
		query = `
        SELECT * FROM community_articles
        WHERE status = $1 AND lower(category) = lower($2)
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4
    `
		args = []interface{}{models.StatusPublished, category, limit, offset}
	}

	articles := []models.CommunityArticle{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return articles, nil
}

func (r *ArticleRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.CommunityArticle, error) {
	var article models.CommunityArticle
	err := r.db.GetContext(ctx, &article,
		`SELECT * FROM community_articles WHERE slug = $1 AND status = $2`,
		slug, models.StatusPublished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}
