package store

import (
	"context"
	"fmt"
	"sync"

	"studybuddy/internal/apperr"
	"studybuddy/internal/models"
)

// MemoryQuizStore is an in-process QuizRepository guarded by a RWMutex.
// Iteration follows insertion order. Deleted ids are retired and cannot be
// created again.
type MemoryQuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]*models.Quiz
	order   []string
	retired map[string]struct{}
}

// NewMemoryQuizStore creates an empty quiz store
func NewMemoryQuizStore() *MemoryQuizStore {
	return &MemoryQuizStore{
		quizzes: make(map[string]*models.Quiz),
		retired: make(map[string]struct{}),
	}
}

// Create stores a copy of quiz
func (s *MemoryQuizStore) Create(_ context.Context, quiz *models.Quiz) error {
	if quiz == nil || quiz.ID == "" {
		return fmt.Errorf("quiz id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quizzes[quiz.ID]; exists {
		return fmt.Errorf("quiz %s already exists", quiz.ID)
	}
	if _, used := s.retired[quiz.ID]; used {
		return fmt.Errorf("quiz id %s was already used", quiz.ID)
	}

	s.quizzes[quiz.ID] = quiz.Clone()
	s.order = append(s.order, quiz.ID)
	return nil
}

// Get returns a copy of the quiz
func (s *MemoryQuizStore) Get(_ context.Context, id string) (*models.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quizzes[id]
	if !ok {
		return nil, apperr.NotFound("Quiz", id)
	}
	return q.Clone(), nil
}

// List returns copies in insertion order, filtered by class when classID is set
func (s *MemoryQuizStore) List(_ context.Context, classID string) ([]*models.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Quiz, 0, len(s.order))
	for _, id := range s.order {
		q := s.quizzes[id]
		if classID != "" && q.ClassID != classID {
			continue
		}
		out = append(out, q.Clone())
	}
	return out, nil
}

// Update runs fn against a working copy and commits it only when fn succeeds.
// Question changes made by fn are discarded.
func (s *MemoryQuizStore) Update(_ context.Context, id string, fn func(q *models.Quiz) error) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.quizzes[id]
	if !ok {
		return nil, apperr.NotFound("Quiz", id)
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = current.ID
	working.ClassID = current.ClassID
	working.CreatedAt = current.CreatedAt
	working.Questions = current.Clone().Questions

	s.quizzes[id] = working
	return working.Clone(), nil
}

// Delete removes the quiz; a second delete of the same id is NotFound
func (s *MemoryQuizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quizzes[id]; !ok {
		return apperr.NotFound("Quiz", id)
	}
	delete(s.quizzes, id)
	s.retired[id] = struct{}{}
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored quizzes
func (s *MemoryQuizStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quizzes)
}
