package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"studybuddy/internal/apperr"
	"studybuddy/internal/models"
)

type sessionEntry struct {
	session  models.ChatSession
	messages []models.ChatMessage
	seq      uint64
}

// MemoryChatStore is an in-process ChatRepository. A session and its message
// log live in one entry so deleting the session drops the log with it.
type MemoryChatStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	retired  map[string]struct{}
	nextSeq  uint64
}

// NewMemoryChatStore creates an empty chat store
func NewMemoryChatStore() *MemoryChatStore {
	return &MemoryChatStore{
		sessions: make(map[string]*sessionEntry),
		retired:  make(map[string]struct{}),
	}
}

func notFound(id string) error {
	return apperr.NotFound("Chat session", id)
}

// CreateSession stores a new session with an empty message log
func (s *MemoryChatStore) CreateSession(_ context.Context, session *models.ChatSession) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("chat session %s already exists", session.ID)
	}
	if _, used := s.retired[session.ID]; used {
		return fmt.Errorf("chat session id %s was already used", session.ID)
	}

	s.nextSeq++
	s.sessions[session.ID] = &sessionEntry{session: *session, seq: s.nextSeq}
	return nil
}

// GetSession returns the session and a copy of its ordered message log
func (s *MemoryChatStore) GetSession(_ context.Context, id string) (*models.ChatSession, []models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, nil, notFound(id)
	}
	session := e.session
	return &session, append([]models.ChatMessage{}, e.messages...), nil
}

// ListSessions returns summaries in insertion order, filtered by class when classID is set
func (s *MemoryChatStore) ListSessions(_ context.Context, classID string) ([]SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SessionSummary, 0, len(s.sessions))
	for _, e := range s.sessions {
		if classID != "" && e.session.ClassID != classID {
			continue
		}
		out = append(out, e.summary())
	}
	sortBySeq(out)
	return out, nil
}

// UpdateSession applies fn to the session under the lock. The id, class and
// creation time cannot be changed by fn.
func (s *MemoryChatStore) UpdateSession(_ context.Context, id string, fn func(s *models.ChatSession) error) (*SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, notFound(id)
	}

	working := e.session
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.ID = e.session.ID
	working.ClassID = e.session.ClassID
	working.CreatedAt = e.session.CreatedAt
	e.session = working

	summary := e.summary()
	return &summary, nil
}

// DeleteSession removes the session and its message log
func (s *MemoryChatStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return notFound(id)
	}
	delete(s.sessions, id)
	s.retired[id] = struct{}{}
	return nil
}

// AppendMessages appends msgs in order and touches the session
func (s *MemoryChatStore) AppendMessages(_ context.Context, id string, touchedAt time.Time, msgs ...models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return notFound(id)
	}
	for _, m := range msgs {
		m.SessionID = id
		e.messages = append(e.messages, m)
	}
	e.session.UpdatedAt = touchedAt
	return nil
}

// ClearMessages empties the log in place and touches the session
func (s *MemoryChatStore) ClearMessages(_ context.Context, id string, touchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return notFound(id)
	}
	e.messages = nil
	e.session.UpdatedAt = touchedAt
	return nil
}

func (e *sessionEntry) summary() SessionSummary {
	sum := SessionSummary{
		Session:      e.session,
		MessageCount: len(e.messages),
		Seq:          e.seq,
	}
	if n := len(e.messages); n > 0 {
		last := e.messages[n-1]
		sum.LastMessage = &last
	}
	return sum
}

func sortBySeq(list []SessionSummary) {
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
}
