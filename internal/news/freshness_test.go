package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/metsukeai/metsuke-api/internal/models"
)

func newsItems(n int) []models.NewsItem {
	items := make([]models.NewsItem, n)
	for i := range items {
		items[i] = models.NewsItem{
			Title: "story",
			URL:   "https://example.com/" + string(rune('a'+i)),
		}
	}
	return items
}

func TestApplicableCutoff(t *testing.T) {
	loc := time.Local

	t.Run("after today's cutoff", func(t *testing.T) {
		now := time.Date(2025, 6, 10, 15, 0, 0, 0, loc)
		cutoff := ApplicableCutoff(now, 13)
		assert.Equal(t, time.Date(2025, 6, 10, 13, 0, 0, 0, loc), cutoff)
	})

	t.Run("before today's cutoff falls back to yesterday", func(t *testing.T) {
		now := time.Date(2025, 6, 10, 9, 0, 0, 0, loc)
		cutoff := ApplicableCutoff(now, 13)
		assert.Equal(t, time.Date(2025, 6, 9, 13, 0, 0, 0, loc), cutoff)
	})

	t.Run("exactly at the cutoff uses today", func(t *testing.T) {
		now := time.Date(2025, 6, 10, 13, 0, 0, 0, loc)
		cutoff := ApplicableCutoff(now, 13)
		assert.Equal(t, time.Date(2025, 6, 10, 13, 0, 0, 0, loc), cutoff)
	})
}

func TestIsFresh(t *testing.T) {
	loc := time.Local
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, loc) // cutoff today 13:00

	t.Run("fetched after cutoff with enough items", func(t *testing.T) {
		cached := &models.NewsCache{
			Items:     newsItems(20),
			FetchedAt: time.Date(2025, 6, 10, 14, 0, 0, 0, loc),
		}
		assert.True(t, IsFresh(cached, now, 13, 20))
	})

	t.Run("fetched exactly at cutoff is fresh", func(t *testing.T) {
		cached := &models.NewsCache{
			Items:     newsItems(20),
			FetchedAt: time.Date(2025, 6, 10, 13, 0, 0, 0, loc),
		}
		assert.True(t, IsFresh(cached, now, 13, 20))
	})

	t.Run("fetched before cutoff is stale", func(t *testing.T) {
		cached := &models.NewsCache{
			Items:     newsItems(20),
			FetchedAt: time.Date(2025, 6, 10, 12, 59, 0, 0, loc),
		}
		assert.False(t, IsFresh(cached, now, 13, 20))
	})

	t.Run("morning requests accept yesterday afternoon's fetch", func(t *testing.T) {
		morning := time.Date(2025, 6, 10, 9, 0, 0, 0, loc)
		cached := &models.NewsCache{
			Items:     newsItems(20),
			FetchedAt: time.Date(2025, 6, 9, 18, 0, 0, 0, loc),
		}
		assert.True(t, IsFresh(cached, morning, 13, 20))
	})

	t.Run("too few items is stale even when recent", func(t *testing.T) {
		cached := &models.NewsCache{
			Items:     newsItems(5),
			FetchedAt: now,
		}
		assert.False(t, IsFresh(cached, now, 13, 20))
	})

	t.Run("missing cache is stale", func(t *testing.T) {
		assert.False(t, IsFresh(nil, now, 13, 20))
	})

	t.Run("zero fetch time is stale", func(t *testing.T) {
		cached := &models.NewsCache{Items: newsItems(20)}
		assert.False(t, IsFresh(cached, now, 13, 20))
	})
}
