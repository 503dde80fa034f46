package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metsukeai/metsuke-api/internal/models"
)

func TestChatRepositoryAppendMessageAssignsSeq(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChatRepository(db)

	mock.ExpectQuery(`INSERT INTO chat_messages`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(3)))

	msg := &models.ChatMessage{
		SessionID: "session-1",
		Role:      models.RoleUser,
		Content:   "hello",
	}

	err := repo.AppendMessage(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, int64(3), msg.Seq)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, models.KindText, msg.Kind, "kind defaults to text")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepositoryGetSessionNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChatRepository(db)

	mock.ExpectQuery(`SELECT \* FROM chat_sessions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatRepositoryListMessagesOrdered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChatRepository(db)

	cols := []string{"id", "session_id", "seq", "role", "kind", "content", "media_url", "created_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("m1", "session-1", int64(1), models.RoleUser, models.KindText, "hi", nil, time.Now()).
		AddRow("m2", "session-1", int64(2), models.RoleAssistant, models.KindText, "hello", nil, time.Now())

	mock.ExpectQuery(`SELECT \* FROM chat_messages WHERE session_id = \$1 ORDER BY seq ASC`).
		WithArgs("session-1").
		WillReturnRows(rows)

	messages, err := repo.ListMessages(context.Background(), "session-1")
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, int64(1), messages[0].Seq)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
}

func TestChatRepositoryCreateSession(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChatRepository(db)

	mock.ExpectExec(`INSERT INTO chat_sessions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	session := &models.ChatSession{UserID: "user-1", Title: "First chat"}
	err := repo.CreateSession(context.Background(), session)
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.False(t, session.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
