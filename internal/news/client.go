package news

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/metsukeai/metsuke-api/internal/models"
)

// PageFetcher retrieves one page of remote news items.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) ([]models.NewsItem, error)
}

// ClientConfig parameterizes the remote news endpoint.
type ClientConfig struct {
	BaseURL  string
	APIKey   string
	Category string
	Language string
	Country  string
	PageSize int
	Timeout  time.Duration
}

// Client fetches pages from a GNews-style HTTP API. Requests are paced by a
// rate limiter so sequential pagination stays inside the provider's limits.
// Failed pages are not retried; the caller skips them.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	cfg     ClientConfig
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		http:    resty.New().SetTimeout(cfg.Timeout),
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		cfg:     cfg,
	}
}

// Remote response shape. Field names differ from models.NewsItem and need
// explicit mapping.
type apiResponse struct {
	TotalArticles int          `json:"totalArticles"`
	Articles      []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"source"`
}

// FetchPage issues one paginated request and maps the payload into NewsItems.
func (c *Client) FetchPage(ctx context.Context, page int) ([]models.NewsItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var payload apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"category": c.cfg.Category,
			"lang":     c.cfg.Language,
			"country":  c.cfg.Country,
			"max":      strconv.Itoa(c.cfg.PageSize),
			"page":     strconv.Itoa(page),
			"apikey":   c.cfg.APIKey,
		}).
		SetResult(&payload).
		Get(c.cfg.BaseURL + "/top-headlines")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch news page %d: %w", page, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for news page %d", resp.StatusCode(), page)
	}

	items := make([]models.NewsItem, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		items = append(items, mapArticle(a))
	}

	return items, nil
}

func mapArticle(a apiArticle) models.NewsItem {
	publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
	if err != nil {
		publishedAt = time.Time{}
	}

	return models.NewsItem{
		Title:          a.Title,
		Description:    a.Description,
		ContentSnippet: a.Content,
		URL:            a.URL,
		ImageURL:       a.Image,
		PublishedAt:    publishedAt,
		Source: models.NewsSource{
			Name: a.Source.Name,
			URL:  a.Source.URL,
		},
	}
}
