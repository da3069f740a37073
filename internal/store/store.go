// Package store holds the repositories behind the quiz and chat services.
// The only implementations are in-process maps; swapping in a database means
// implementing these interfaces.
package store

import (
	"context"
	"time"

	"studybuddy/internal/models"
)

// QuizRepository stores quizzes. Returned records are copies owned by the caller.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	Get(ctx context.Context, id string) (*models.Quiz, error)
	// List returns quizzes in insertion order; an empty classID means all classes.
	List(ctx context.Context, classID string) ([]*models.Quiz, error)
	// Update applies fn to the stored quiz under the store lock.
	Update(ctx context.Context, id string, fn func(q *models.Quiz) error) (*models.Quiz, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) int
}

// SessionSummary is a session plus values derived from its message log,
// computed atomically with the read.
type SessionSummary struct {
	Session      models.ChatSession
	MessageCount int
	LastMessage  *models.ChatMessage
	// Seq is the insertion position of the session, used as a stable tiebreaker.
	Seq uint64
}

// ChatRepository stores chat sessions and their ordered message logs
type ChatRepository interface {
	CreateSession(ctx context.Context, session *models.ChatSession) error
	GetSession(ctx context.Context, id string) (*models.ChatSession, []models.ChatMessage, error)
	ListSessions(ctx context.Context, classID string) ([]SessionSummary, error)
	UpdateSession(ctx context.Context, id string, fn func(s *models.ChatSession) error) (*SessionSummary, error)
	DeleteSession(ctx context.Context, id string) error
	// AppendMessages appends to the log and sets the session's updated_at to touchedAt.
	AppendMessages(ctx context.Context, id string, touchedAt time.Time, msgs ...models.ChatMessage) error
	// ClearMessages empties the log and sets the session's updated_at to touchedAt.
	ClearMessages(ctx context.Context, id string, touchedAt time.Time) error
}
