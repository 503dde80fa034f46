package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Explore feed counters.
var (
	NewsCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metsuke_news_cache_hits_total",
		Help: "Explore feed requests served from the persisted cache.",
	})

	NewsCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metsuke_news_cache_misses_total",
		Help: "Explore feed requests that triggered a remote refresh.",
	})

	NewsPageFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metsuke_news_page_failures_total",
		Help: "Remote news API page requests that failed and were skipped.",
	})

	NewsDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metsuke_news_degraded_total",
		Help: "Refreshes served entirely from the fallback pool.",
	})
)

// Submission flow counters.
var (
	ArticleSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metsuke_article_submissions_total",
		Help: "Article submissions by outcome.",
	}, []string{"outcome"})

	UploadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metsuke_upload_failures_total",
		Help: "Object storage upload failures by attachment kind.",
	}, []string{"kind"})
)
