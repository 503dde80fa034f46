package news

import (
	"context"
	"sync"
	"time"

	"github.com/metsukeai/metsuke-api/internal/cache"
	"github.com/metsukeai/metsuke-api/internal/logger"
	"github.com/metsukeai/metsuke-api/internal/metrics"
	"github.com/metsukeai/metsuke-api/internal/models"
)

// AggregatorConfig tunes the explore feed assembly.
type AggregatorConfig struct {
	TargetCount int
	MaxPages    int
	CutoffHour  int
}

// Result is one assembled explore feed. Degraded is set when every remote
// page failed and the list was drawn entirely from the fallback pool; the
// feed still renders, the client just shows a soft notice.
type Result struct {
	Items     []models.NewsItem `json:"items"`
	FetchedAt time.Time         `json:"fetched_at"`
	Degraded  bool              `json:"degraded"`
	FromCache bool              `json:"from_cache"`
}

// Aggregator assembles the explore feed: serve the persisted snapshot while
// it is fresh, otherwise refresh from the remote source page by page, merge,
// de-duplicate, pad from the fallback pool, and persist the new snapshot.
type Aggregator struct {
	fetcher  PageFetcher
	store    cache.NewsStore
	fallback []models.NewsItem
	cfg      AggregatorConfig

	// refreshMu serializes refreshes. Waiters re-check freshness after
	// acquiring so the losing callers reuse the winner's snapshot instead
	// of refetching.
	refreshMu sync.Mutex

	now func() time.Time
}

func NewAggregator(fetcher PageFetcher, store cache.NewsStore, cfg AggregatorConfig) *Aggregator {
	if cfg.TargetCount <= 0 {
		cfg.TargetCount = 20
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	return &Aggregator{
		fetcher:  fetcher,
		store:    store,
		fallback: FallbackPool(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Explore returns the current feed, refreshing the snapshot when stale.
func (a *Aggregator) Explore(ctx context.Context) (Result, error) {
	if res, ok := a.fromCache(ctx); ok {
		metrics.NewsCacheHits.Inc()
		return res, nil
	}

	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	// Another caller may have refreshed while this one waited on the lock.
	if res, ok := a.fromCache(ctx); ok {
		metrics.NewsCacheHits.Inc()
		return res, nil
	}
	metrics.NewsCacheMisses.Inc()

	items, degraded := a.refresh(ctx)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	fetchedAt := a.now()
	snapshot := &models.NewsCache{Items: items, FetchedAt: fetchedAt}
	if err := a.store.Save(ctx, snapshot); err != nil {
		// A failed save only costs a refetch next time.
		logger.Get().Error().Err(err).Msg("Failed to persist news cache")
	}

	if degraded {
		metrics.NewsDegraded.Inc()
	}

	return Result{Items: items, FetchedAt: fetchedAt, Degraded: degraded}, nil
}

func (a *Aggregator) fromCache(ctx context.Context) (Result, bool) {
	cached, err := a.store.Load(ctx)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("News cache load failed, refreshing")
		return Result{}, false
	}
	if !IsFresh(cached, a.now(), a.cfg.CutoffHour, a.cfg.TargetCount) {
		return Result{}, false
	}
	return Result{Items: cached.Items, FetchedAt: cached.FetchedAt, FromCache: true}, true
}

// refresh walks the remote pages sequentially, skipping failed pages without
// retrying, then merges with the fallback pool. Degraded means no page
// succeeded.
func (a *Aggregator) refresh(ctx context.Context) ([]models.NewsItem, bool) {
	log := logger.Get()
	start := a.now()

	var remote []models.NewsItem
	anyPage := false
	for page := 1; page <= a.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			break
		}

		items, err := a.fetcher.FetchPage(ctx, page)
		if err != nil {
			metrics.NewsPageFailures.Inc()
			log.Warn().Err(err).Int("page", page).Msg("Skipping failed news page")
			continue
		}

		anyPage = true
		remote = append(remote, items...)
	}

	merged := Merge(remote, a.fallback, a.cfg.TargetCount)

	log.Info().
		Int("remote_items", len(remote)).
		Int("final_items", len(merged)).
		Bool("degraded", !anyPage).
		Dur("duration", a.now().Sub(start)).
		Msg("Refreshed explore feed")

	return merged, !anyPage
}

// Merge de-duplicates the remote items in first-seen order, pads from the
// fallback pool excluding identities already present, and truncates to
// target. The result never exceeds target and never contains a duplicate
// identity.
func Merge(remote, pool []models.NewsItem, target int) []models.NewsItem {
	seen := make(map[string]struct{}, target)
	merged := make([]models.NewsItem, 0, target)

	appendUnique := func(items []models.NewsItem) {
		for _, item := range items {
			if len(merged) >= target {
				return
			}
			key := item.Identity()
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if item.ImageURL == "" {
				item.ImageURL = DefaultImageURL
			}
			merged = append(merged, item)
		}
	}

	appendUnique(remote)
	appendUnique(pool)
	return merged
}
