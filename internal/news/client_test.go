package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "totalArticles": 2,
  "articles": [
    {
      "title": "Quiet Breakthrough in Robotics",
      "description": "A lab demo that actually survived contact with the real world.",
      "content": "Full body of the story...",
      "url": "https://news.example.com/robotics",
      "image": "https://cdn.example.com/robotics.jpg",
      "publishedAt": "2025-06-10T08:30:00Z",
      "source": {"name": "Example Wire", "url": "https://news.example.com"}
    },
    {
      "title": "Imageless Story",
      "description": "No picture on this one.",
      "content": "",
      "url": "https://news.example.com/imageless",
      "image": "",
      "publishedAt": "not-a-timestamp",
      "source": {"name": "Example Wire", "url": "https://news.example.com"}
    }
  ]
}`

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:  baseURL,
		APIKey:   "test-key",
		Category: "technology",
		Language: "en",
		Country:  "us",
		PageSize: 10,
		Timeout:  2 * time.Second,
	})
}

func TestFetchPageMapsRemoteFields(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"category": q.Get("category"),
			"lang":     q.Get("lang"),
			"country":  q.Get("country"),
			"max":      q.Get("max"),
			"page":     q.Get("page"),
			"apikey":   q.Get("apikey"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	items, err := client.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, map[string]string{
		"category": "technology",
		"lang":     "en",
		"country":  "us",
		"max":      "10",
		"page":     "2",
		"apikey":   "test-key",
	}, gotQuery)

	first := items[0]
	assert.Equal(t, "Quiet Breakthrough in Robotics", first.Title)
	assert.Equal(t, "https://news.example.com/robotics", first.URL)
	assert.Equal(t, "https://cdn.example.com/robotics.jpg", first.ImageURL)
	assert.Equal(t, "Example Wire", first.Source.Name)
	assert.Equal(t, time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC), first.PublishedAt.UTC())

	// Unparseable timestamps degrade to the zero time instead of failing.
	assert.True(t, items[1].PublishedAt.IsZero())
}

func TestFetchPageRejectsNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchPage(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchPageHonorsCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchPage(ctx, 1)
	require.Error(t, err)
}
