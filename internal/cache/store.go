package cache

import (
	"context"

	"github.com/metsukeai/metsuke-api/internal/models"
)

// NewsStore persists the explore-feed snapshot. Load returns (nil, nil) when
// no usable cache exists; a corrupt blob counts as absent, never as an error.
type NewsStore interface {
	Load(ctx context.Context) (*models.NewsCache, error)
	Save(ctx context.Context, cache *models.NewsCache) error
	Close() error
}
