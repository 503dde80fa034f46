package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/metsukeai/metsuke-api/internal/models"
)

type ChatRepositoryImpl struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepositoryImpl {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) CreateSession(ctx context.Context, session *models.ChatSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, user_id, title, created_at) VALUES ($1, $2, $3, $4)`,
		session.ID, session.UserID, session.Title, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}
	return nil
}

func (r *ChatRepositoryImpl) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.db.GetContext(ctx, &session,
		`SELECT * FROM chat_sessions WHERE id = $1`, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return &session, nil
}

func (r *ChatRepositoryImpl) ListSessions(ctx context.Context, userID string) ([]models.ChatSession, error) {
	sessions := []models.ChatSession{}
	err := r.db.SelectContext(ctx, &sessions,
		`SELECT * FROM chat_sessions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	return sessions, nil
}

func (r *ChatRepositoryImpl) ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := r.db.SelectContext(ctx, &messages,
		`SELECT * FROM chat_messages WHERE session_id = $1 ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// AppendMessage inserts the message with the next sequence number for its
// session. The unique (session_id, seq) constraint keeps ordering append-only
// even under concurrent writers.
func (r *ChatRepositoryImpl) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Kind == "" {
		msg.Kind = models.KindText
	}
	msg.CreatedAt = time.Now()

	query := `
        INSERT INTO chat_messages (id, session_id, seq, role, kind, content, media_url, created_at)
        VALUES ($1, $2,
            (SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_messages WHERE session_id = $2),
            $3, $4, $5, $6, $7)
        RETURNING seq
    `

	err := r.db.QueryRowContext(ctx, query,
		msg.ID, msg.SessionID, msg.Role, msg.Kind, msg.Content, msg.MediaURL, msg.CreatedAt).
		Scan(&msg.Seq)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}
