package articles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/metsukeai/metsuke-api/internal/metrics"
	"github.com/metsukeai/metsuke-api/internal/models"
	"github.com/metsukeai/metsuke-api/internal/repository"
	"github.com/metsukeai/metsuke-api/internal/storage"
	"github.com/metsukeai/metsuke-api/internal/utils"
)

const (
	minTitleLen    = 3
	maxAbstractLen = 500
)

// ErrInvalidInput marks validation failures, blocked before any side effect.
var ErrInvalidInput = errors.New("invalid input")

// UploadError reports which attachment failed, so the client can surface an
// error scoped to that file. No article row is written after one.
type UploadError struct {
	Attachment string
	Err        error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s upload failed: %v", e.Attachment, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Attachment is one optional binary carried by a submission.
type Attachment struct {
	FileName string
	Body     io.Reader
	Size     int64
}

// SubmitInput carries a validated-by-nobody submission form. Tags arrive as
// the raw comma-separated input field.
type SubmitInput struct {
	AuthorID   string
	Title      string
	Abstract   string
	Content    string
	Category   string
	TagsCSV    string
	CoverImage *Attachment
	PDF        *Attachment
}

// Service owns article submission and listing.
type Service struct {
	repo      repository.ArticleRepository
	store     storage.ObjectStorage
	sanitizer *bluemonday.Policy
}

func NewService(repo repository.ArticleRepository, store storage.ObjectStorage) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Submit validates the form, uploads the requested attachments one by one,
// and only then inserts the article row. Any upload failure aborts the whole
// submission with an error naming the attachment; the row insert is attempted
// exactly once, with status published and a freshly derived slug.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*models.CommunityArticle, error) {
	if err := validate(input); err != nil {
		metrics.ArticleSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	category := strings.ToLower(strings.TrimSpace(input.Category))
	if category == "" {
		category = models.CategoryGeneral
	}

	coverImageURL, err := s.uploadOptional(ctx, "cover image", storage.PrefixArticleAssets, input.CoverImage)
	if err != nil {
		metrics.UploadFailures.WithLabelValues("cover_image").Inc()
		metrics.ArticleSubmissions.WithLabelValues("upload_failed").Inc()
		return nil, err
	}

	pdfURL, err := s.uploadOptional(ctx, "PDF", storage.PrefixArticleAssets, input.PDF)
	if err != nil {
		metrics.UploadFailures.WithLabelValues("pdf").Inc()
		metrics.ArticleSubmissions.WithLabelValues("upload_failed").Inc()
		return nil, err
	}

	article := &models.CommunityArticle{
		Slug:          utils.Slugify(input.Title),
		AuthorID:      input.AuthorID,
		Title:         strings.TrimSpace(input.Title),
		Abstract:      strings.TrimSpace(input.Abstract),
		Content:       s.sanitizer.Sanitize(input.Content),
		Category:      category,
		Tags:          parseTags(input.TagsCSV),
		CoverImageURL: coverImageURL,
		PDFURL:        pdfURL,
		Status:        models.StatusPublished,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		metrics.ArticleSubmissions.WithLabelValues("insert_failed").Inc()
		return nil, err
	}

	metrics.ArticleSubmissions.WithLabelValues("published").Inc()
	return article, nil
}

// List returns published articles, optionally filtered by category ("all" or
// empty disables the filter).
func (s *Service) List(ctx context.Context, category string, limit, offset int) ([]models.CommunityArticle, error) {
	return s.repo.ListPublished(ctx, category, limit, offset)
}

// Get returns one published article by slug.
func (s *Service) Get(ctx context.Context, slug string) (*models.CommunityArticle, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) uploadOptional(ctx context.Context, label, prefix string, att *Attachment) (*string, error) {
	if att == nil {
		return nil, nil
	}

	publicURL, err := s.store.Upload(ctx, prefix, att.FileName, att.Body, att.Size)
	if err != nil {
		return nil, &UploadError{Attachment: label, Err: err}
	}

	return &publicURL, nil
}

func validate(input SubmitInput) error {
	if input.AuthorID == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if len(strings.TrimSpace(input.Title)) < minTitleLen {
		return fmt.Errorf("%w: title must be at least %d characters", ErrInvalidInput, minTitleLen)
	}
	if strings.TrimSpace(input.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if len(input.Abstract) > maxAbstractLen {
		return fmt.Errorf("%w: abstract must be at most %d characters", ErrInvalidInput, maxAbstractLen)
	}
	if c := strings.ToLower(strings.TrimSpace(input.Category)); c != "" && !models.ValidCategory(c) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	return nil
}

// parseTags splits the comma-separated input, trims each tag, and drops
// empties and duplicates while preserving order.
func parseTags(csv string) models.StringList {
	seen := make(map[string]struct{})
	tags := models.StringList{}
	for _, raw := range strings.Split(csv, ",") {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
