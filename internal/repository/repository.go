package repository

import (
	"context"
	"errors"
	"time"

	"github.com/metsukeai/metsuke-api/internal/models"
)

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, token string, expiry time.Time) error
	UpdateProfile(ctx context.Context, userID, fullName, bio string) error
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
}

type ArticleRepository interface {
	Create(ctx context.Context, article *models.CommunityArticle) error
	ListPublished(ctx context.Context, category string, limit, offset int) ([]models.CommunityArticle, error)
	GetBySlug(ctx context.Context, slug string) (*models.CommunityArticle, error)
}

type ChatRepository interface {
	CreateSession(ctx context.Context, session *models.ChatSession) error
	GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error)
	ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error)
	ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	AppendMessage(ctx context.Context, msg *models.ChatMessage) error
}
