package models

import "time"

// NewsItem represents one externally sourced news story shown on the explore feed.
type NewsItem struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ContentSnippet string     `json:"content_snippet,omitempty"`
	URL            string     `json:"url"`
	ImageURL       string     `json:"image_url,omitempty"`
	PublishedAt    time.Time  `json:"published_at"`
	Source         NewsSource `json:"source"`
}

// NewsSource identifies the publisher of a NewsItem.
type NewsSource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Identity returns the de-duplication key for the item. The URL is the
// canonical identity; the title stands in when the URL is absent.
func (n NewsItem) Identity() string {
	if n.URL != "" {
		return n.URL
	}
	return n.Title
}

// NewsCache is the persisted explore-feed snapshot. It is written as a single
// blob so a save is atomic from the reader's point of view.
type NewsCache struct {
	Items     []NewsItem `json:"items"`
	FetchedAt time.Time  `json:"fetched_at"`
}
