package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"studybuddy/internal/apperr"
	"studybuddy/internal/models"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newSession(id, classID string) *models.ChatSession {
	return &models.ChatSession{ID: id, ClassID: classID, Title: "New Conversation", CreatedAt: t0, UpdatedAt: t0}
}

func msg(id, role, content string) models.ChatMessage {
	return models.ChatMessage{ID: id, Role: role, Content: content, Timestamp: t0}
}

func TestMemoryChatStoreAppendAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryChatStore()
	if err := s.CreateSession(ctx, newSession("s1", "cs101")); err != nil {
		t.Fatalf("create: %v", err)
	}

	touched := t0.Add(time.Minute)
	if err := s.AppendMessages(ctx, "s1", touched, msg("m1", "user", "hi"), msg("m2", "assistant", "hello")); err != nil {
		t.Fatalf("append: %v", err)
	}

	session, messages, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !session.UpdatedAt.Equal(touched) {
		t.Fatalf("expected updated_at to be touched")
	}
	if len(messages) != 2 || messages[0].ID != "m1" || messages[1].ID != "m2" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
	if messages[0].SessionID != "s1" {
		t.Fatalf("expected session back-reference to be set")
	}

	messages[0].Content = "mutated"
	_, again, _ := s.GetSession(ctx, "s1")
	if again[0].Content != "hi" {
		t.Fatalf("message log leaked through returned slice")
	}
}

func TestMemoryChatStoreSummaries(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryChatStore()
	_ = s.CreateSession(ctx, newSession("s1", "cs101"))
	_ = s.CreateSession(ctx, newSession("s2", "cs102"))
	_ = s.CreateSession(ctx, newSession("s3", "cs101"))
	_ = s.AppendMessages(ctx, "s3", t0, msg("m1", "user", "first"), msg("m2", "assistant", "latest"))

	list, err := s.ListSessions(ctx, "cs101")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Session.ID != "s1" || list[1].Session.ID != "s3" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].MessageCount != 0 || list[0].LastMessage != nil {
		t.Fatalf("expected empty summary for s1: %+v", list[0])
	}
	if list[1].MessageCount != 2 || list[1].LastMessage.Content != "latest" {
		t.Fatalf("unexpected summary for s3: %+v", list[1])
	}
}

func TestMemoryChatStoreClearAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryChatStore()
	_ = s.CreateSession(ctx, newSession("s1", "cs101"))
	_ = s.AppendMessages(ctx, "s1", t0, msg("m1", "user", "hi"))

	if err := s.ClearMessages(ctx, "s1", t0.Add(time.Hour)); err != nil {
		t.Fatalf("clear: %v", err)
	}
	session, messages, _ := s.GetSession(ctx, "s1")
	if len(messages) != 0 || !session.UpdatedAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("unexpected state after clear: %+v %+v", session, messages)
	}

	if err := s.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for name, err := range map[string]error{
		"get":    func() error { _, _, err := s.GetSession(ctx, "s1"); return err }(),
		"delete": s.DeleteSession(ctx, "s1"),
		"append": s.AppendMessages(ctx, "s1", t0, msg("m2", "user", "x")),
		"clear":  s.ClearMessages(ctx, "s1", t0),
	} {
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("%s: expected NotFound, got %v", name, err)
		}
	}
	if err := s.CreateSession(ctx, newSession("s1", "cs101")); err == nil {
		t.Fatalf("expected retired id to be rejected")
	}
}

func TestMemoryChatStoreUpdateSession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryChatStore()
	_ = s.CreateSession(ctx, newSession("s1", "cs101"))

	sum, err := s.UpdateSession(ctx, "s1", func(sess *models.ChatSession) error {
		sess.Title = "Recursion"
		sess.ClassID = "other"
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if sum.Session.Title != "Recursion" || sum.Session.ClassID != "cs101" {
		t.Fatalf("unexpected session: %+v", sum.Session)
	}
}

func TestMemoryChatStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryChatStore()
	_ = s.CreateSession(ctx, newSession("s1", "cs101"))

	const writers = 20
	const perWriter = 25
	var g errgroup.Group
	for w := 0; w < writers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				id := fmt.Sprintf("m-%d-%d", w, i)
				if err := s.AppendMessages(ctx, "s1", time.Now(), msg(id, "user", id)); err != nil {
					return err
				}
				if _, err := s.ListSessions(ctx, ""); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent appends failed: %v", err)
	}

	_, messages, _ := s.GetSession(ctx, "s1")
	if len(messages) != writers*perWriter {
		t.Fatalf("lost updates: expected %d messages, got %d", writers*perWriter, len(messages))
	}
}
