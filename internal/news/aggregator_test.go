package news

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metsukeai/metsuke-api/internal/cache"
	"github.com/metsukeai/metsuke-api/internal/models"
)

type fakePager struct {
	pages map[int][]models.NewsItem
	errs  map[int]error
	calls int
}

func (f *fakePager) FetchPage(ctx context.Context, page int) ([]models.NewsItem, error) {
	f.calls++
	if err, ok := f.errs[page]; ok {
		return nil, err
	}
	return f.pages[page], nil
}

func remoteItems(prefix string, n int) []models.NewsItem {
	items := make([]models.NewsItem, n)
	for i := range items {
		items[i] = models.NewsItem{
			Title: fmt.Sprintf("%s story %d", prefix, i),
			URL:   fmt.Sprintf("https://news.example.com/%s/%d", prefix, i),
		}
	}
	return items
}

func TestMergeDeduplicatesAcrossPages(t *testing.T) {
	page1 := remoteItems("p1", 3)
	page2 := []models.NewsItem{
		page1[1], // same URL again
		{Title: "fresh", URL: "https://news.example.com/p2/0"},
	}

	merged := Merge(append(append([]models.NewsItem{}, page1...), page2...), nil, 20)

	require.Len(t, merged, 4)
	// The duplicate keeps its first-seen position.
	assert.Equal(t, page1[1].URL, merged[1].URL)
	seen := map[string]int{}
	for _, item := range merged {
		seen[item.URL]++
	}
	for url, count := range seen {
		assert.Equal(t, 1, count, "duplicate url %s", url)
	}
}

func TestMergeUsesTitleWhenURLMissing(t *testing.T) {
	remote := []models.NewsItem{
		{Title: "untitled link"},
		{Title: "untitled link"},
		{Title: "another"},
	}

	merged := Merge(remote, nil, 20)
	assert.Len(t, merged, 2)
}

func TestMergeFallbackPaddingScenario(t *testing.T) {
	// Remote returns 12 unique items; the pool has 15, two of which collide
	// with remote URLs. Expect exactly 20: the 12 remote items first, then 8
	// pool items, no duplicates.
	remote := remoteItems("remote", 12)

	pool := remoteItems("pool", 15)
	pool[3].URL = remote[0].URL
	pool[7].URL = remote[5].URL

	merged := Merge(remote, pool, 20)

	require.Len(t, merged, 20)
	for i := 0; i < 12; i++ {
		assert.Equal(t, remote[i].URL, merged[i].URL, "remote order broken at %d", i)
	}
	seen := map[string]struct{}{}
	for _, item := range merged {
		_, dup := seen[item.Identity()]
		assert.False(t, dup, "duplicate identity %s", item.Identity())
		seen[item.Identity()] = struct{}{}
	}
}

func TestMergeNeverExceedsTarget(t *testing.T) {
	merged := Merge(remoteItems("r", 30), remoteItems("p", 30), 20)
	assert.Len(t, merged, 20)
}

func TestMergeShortPoolYieldsAllUnique(t *testing.T) {
	merged := Merge(remoteItems("r", 3), remoteItems("p", 4), 20)
	assert.Len(t, merged, 7)
}

func TestMergeFillsMissingImage(t *testing.T) {
	merged := Merge([]models.NewsItem{{Title: "t", URL: "https://x.test/1"}}, nil, 20)
	require.Len(t, merged, 1)
	assert.Equal(t, DefaultImageURL, merged[0].ImageURL)
}

func testAggregator(fetcher PageFetcher, store cache.NewsStore, now time.Time) *Aggregator {
	agg := NewAggregator(fetcher, store, AggregatorConfig{
		TargetCount: 20,
		MaxPages:    3,
		CutoffHour:  13,
	})
	agg.now = func() time.Time { return now }
	return agg
}

func TestExploreServesFreshCacheWithoutFetching(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local)
	store := cache.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &models.NewsCache{
		Items:     remoteItems("cached", 20),
		FetchedAt: time.Date(2025, 6, 10, 14, 0, 0, 0, time.Local),
	}))

	pager := &fakePager{}
	agg := testAggregator(pager, store, now)

	result, err := agg.Explore(context.Background())
	require.NoError(t, err)

	assert.True(t, result.FromCache)
	assert.False(t, result.Degraded)
	assert.Len(t, result.Items, 20)
	assert.Zero(t, pager.calls, "fresh cache must not trigger a network call")
}

func TestExploreRefreshesStaleCache(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local)
	store := cache.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &models.NewsCache{
		Items:     remoteItems("old", 20),
		FetchedAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local), // before cutoff
	}))

	pager := &fakePager{pages: map[int][]models.NewsItem{
		1: remoteItems("fresh", 20),
	}}
	agg := testAggregator(pager, store, now)

	result, err := agg.Explore(context.Background())
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.False(t, result.Degraded)
	require.Len(t, result.Items, 20)
	assert.Equal(t, "https://news.example.com/fresh/0", result.Items[0].URL)

	// The refreshed snapshot is persisted with the new timestamp.
	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.FetchedAt.Equal(now))
	assert.Len(t, saved.Items, 20)
}

func TestExploreSkipsFailedPages(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local)
	pager := &fakePager{
		pages: map[int][]models.NewsItem{
			1: remoteItems("a", 8),
			3: remoteItems("c", 8),
		},
		errs: map[int]error{2: errors.New("boom")},
	}
	agg := testAggregator(pager, cache.NewMemoryStore(), now)

	result, err := agg.Explore(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Degraded, "partial success is not degraded")
	assert.Equal(t, 3, pager.calls)
	// 16 remote survive, the rest padded from the fallback pool.
	require.Len(t, result.Items, 20)
	assert.Equal(t, "https://news.example.com/a/0", result.Items[0].URL)
	assert.Equal(t, editorialSource.Name, result.Items[16].Source.Name)
}

func TestExploreTotalFallbackWhenAllPagesFail(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local)
	pager := &fakePager{errs: map[int]error{
		1: errors.New("down"),
		2: errors.New("down"),
		3: errors.New("down"),
	}}
	agg := testAggregator(pager, cache.NewMemoryStore(), now)

	result, err := agg.Explore(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	require.Len(t, result.Items, 20)
	for _, item := range result.Items {
		assert.Equal(t, editorialSource.Name, item.Source.Name)
	}
}

func TestExploreTreatsCorruptCacheAsMiss(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.Local)
	store := cache.NewMemoryStore()
	store.SetRaw([]byte("{not json"))

	pager := &fakePager{pages: map[int][]models.NewsItem{
		1: remoteItems("fresh", 20),
	}}
	agg := testAggregator(pager, store, now)

	result, err := agg.Explore(context.Background())
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.NotZero(t, pager.calls)
	require.Len(t, result.Items, 20)
}
