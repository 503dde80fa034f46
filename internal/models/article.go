package models

import "time"

// Article categories accepted by the submission form.
const (
	CategoryGeneral      = "general"
	CategorySoftware     = "software"
	CategoryMechatronics = "mechatronics"
	CategoryAI           = "ai"
	CategoryDesign       = "design"
	CategoryPhilosophy   = "philosophy"
)

// CategoryAll is the listing sentinel that disables category filtering.
const CategoryAll = "all"

// Article statuses. Draft exists in the schema but the submission flow
// publishes directly.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// CommunityArticle is a user-submitted long-form article.
type CommunityArticle struct {
	ID            string         `json:"id" db:"id"`
	Slug          string         `json:"slug" db:"slug"`
	AuthorID      string         `json:"author_id" db:"author_id"`
	Title         string         `json:"title" db:"title"`
	Abstract      string         `json:"abstract" db:"abstract"`
	Content       string         `json:"content" db:"content"`
	Category      string         `json:"category" db:"category"`
	Tags          StringList     `json:"tags" db:"tags"`
	CoverImageURL *string        `json:"cover_image_url" db:"cover_image_url"`
	PDFURL        *string        `json:"pdf_url" db:"pdf_url"`
	Status        string         `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryGeneral, CategorySoftware, CategoryMechatronics,
		CategoryAI, CategoryDesign, CategoryPhilosophy:
		return true
	}
	return false
}
