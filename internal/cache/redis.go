package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/metsukeai/metsuke-api/internal/config"
	"github.com/metsukeai/metsuke-api/internal/logger"
	"github.com/metsukeai/metsuke-api/internal/models"
)

const newsCacheKey = "news:cache"

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: cfg.RedisPrefix,
	}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Load reads the persisted snapshot. Missing key and parse failure both
// report a cache miss so a stale-format blob only costs one extra refresh.
func (r *RedisStore) Load(ctx context.Context) (*models.NewsCache, error) {
	data, err := r.client.Get(ctx, r.prefix+newsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var cached models.NewsCache
	if err := json.Unmarshal(data, &cached); err != nil {
		logger.Get().Warn().Err(err).Msg("Discarding unparseable news cache")
		return nil, nil
	}

	return &cached, nil
}

// Save overwrites the snapshot in a single key write. No TTL: a stale cache
// is replaced on the next refresh, never expired out from under a reader.
func (r *RedisStore) Save(ctx context.Context, cache *models.NewsCache) error {
	data, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to marshal news cache: %w", err)
	}

	if err := r.client.Set(ctx, r.prefix+newsCacheKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}

	return nil
}
