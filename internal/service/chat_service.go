package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"studybuddy/internal/models"
	"studybuddy/internal/prompts"
	"studybuddy/internal/store"
	"studybuddy/internal/util"
)

// ChatService handles chat sessions and tutoring conversations
type ChatService struct {
	assistant *AssistantService
	repo      store.ChatRepository
	now       func() time.Time
	newID     func() string
	logger    *util.Logger
}

// NewChatService creates a new chat service
func NewChatService(assistant *AssistantService, repo store.ChatRepository) *ChatService {
	return &ChatService{
		assistant: assistant,
		repo:      repo,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
		logger:    util.NewLogger("ChatService"),
	}
}

// CreateSession opens an empty session. A missing or blank title gets the default.
func (cs *ChatService) CreateSession(ctx context.Context, req *models.ChatSessionCreateRequest) (*models.ChatSessionMetadata, error) {
	title := util.DefaultSessionTitle
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		title = *req.Title
	}

	session, err := cs.newSession(ctx, req.ClassID, title)
	if err != nil {
		return nil, err
	}

	meta := toMetadata(store.SessionSummary{Session: *session})
	return &meta, nil
}

// ListSessions returns session metadata, most recently updated first
func (cs *ChatService) ListSessions(ctx context.Context, classID string) (*models.ChatSessionListResponse, error) {
	summaries, err := cs.repo.ListSessions(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.Session.UpdatedAt.Equal(b.Session.UpdatedAt) {
			return a.Session.UpdatedAt.After(b.Session.UpdatedAt)
		}
		return a.Seq < b.Seq
	})

	items := lo.Map(summaries, func(s store.SessionSummary, _ int) models.ChatSessionMetadata {
		return toMetadata(s)
	})
	return &models.ChatSessionListResponse{Sessions: items, Total: len(items)}, nil
}

// GetSession returns the session with its full message history
func (cs *ChatService) GetSession(ctx context.Context, id string) (*models.ChatSessionDetail, error) {
	session, messages, err := cs.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.ChatSessionDetail{
		ID:        session.ID,
		ClassID:   session.ClassID,
		Title:     session.Title,
		Messages:  messages,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

// RenameSession replaces the title and touches updated_at
func (cs *ChatService) RenameSession(ctx context.Context, id, title string) (*models.ChatSessionMetadata, error) {
	summary, err := cs.repo.UpdateSession(ctx, id, func(s *models.ChatSession) error {
		s.Title = title
		s.UpdatedAt = cs.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	meta := toMetadata(*summary)
	return &meta, nil
}

// DeleteSession removes the session and its messages
func (cs *ChatService) DeleteSession(ctx context.Context, id string) error {
	if err := cs.repo.DeleteSession(ctx, id); err != nil {
		return err
	}
	cs.logger.Info("Chat session deleted", "session_id", id)
	return nil
}

// ClearMessages empties the message log but keeps the session
func (cs *ChatService) ClearMessages(ctx context.Context, id string) error {
	return cs.repo.ClearMessages(ctx, id, cs.now())
}

// Send records the user message, asks the tutor for a reply and records it.
// Without a conversation id a new session titled after the message is opened.
func (cs *ChatService) Send(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	cs.logger.Start("Send Chat")
	defer cs.logger.End("Send Chat")

	run := RunRequest{
		Mode:    prompts.ModeChat,
		ClassID: req.ClassID,
		Message: req.Message,
		Focus:   deref(req.Focus),
	}
	sessionID := strings.TrimSpace(deref(req.ConversationID))

	// History lookup and material retrieval are independent
	var (
		history      []models.ChatMessage
		systemPrompt string
	)
	g, gctx := errgroup.WithContext(ctx)
	if sessionID != "" {
		g.Go(func() error {
			_, msgs, err := cs.repo.GetSession(gctx, sessionID)
			history = msgs
			return err
		})
	}
	g.Go(func() error {
		var err error
		systemPrompt, err = cs.assistant.BuildPrompt(gctx, run)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sessionID == "" {
		session, err := cs.newSession(ctx, req.ClassID, util.Truncate(req.Message, util.PreviewLength, util.PreviewSuffix))
		if err != nil {
			return nil, err
		}
		sessionID = session.ID
	}

	userMsg := cs.newMessage(util.RoleUser, req.Message)
	if err := cs.repo.AppendMessages(ctx, sessionID, userMsg.Timestamp, userMsg); err != nil {
		return nil, err
	}

	run.History = toTurns(history)
	reply, err := cs.assistant.Complete(ctx, systemPrompt, run)
	if err != nil {
		return nil, fmt.Errorf("failed to generate response: %w", err)
	}

	assistantMsg := cs.newMessage(util.RoleAssistant, reply)
	if err := cs.repo.AppendMessages(ctx, sessionID, assistantMsg.Timestamp, assistantMsg); err != nil {
		return nil, err
	}

	cs.logger.Success("Chat processed", "session_id", sessionID)
	return &models.ChatResponse{
		Response:       reply,
		ConversationID: sessionID,
		Timestamp:      assistantMsg.Timestamp,
	}, nil
}

func (cs *ChatService) newSession(ctx context.Context, classID, title string) (*models.ChatSession, error) {
	now := cs.now()
	session := &models.ChatSession{
		ID:        cs.newID(),
		ClassID:   classID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := cs.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	cs.logger.Info("Chat session created", "session_id", session.ID, "class_id", classID)
	return session, nil
}

func (cs *ChatService) newMessage(role, content string) models.ChatMessage {
	return models.ChatMessage{
		ID:        cs.newID(),
		Role:      role,
		Content:   content,
		Timestamp: cs.now(),
	}
}

func toTurns(msgs []models.ChatMessage) []models.ChatTurn {
	return lo.Map(msgs, func(m models.ChatMessage, _ int) models.ChatTurn {
		return models.ChatTurn{Role: m.Role, Content: m.Content}
	})
}

func toMetadata(s store.SessionSummary) models.ChatSessionMetadata {
	meta := models.ChatSessionMetadata{
		ID:           s.Session.ID,
		ClassID:      s.Session.ClassID,
		Title:        s.Session.Title,
		MessageCount: s.MessageCount,
		CreatedAt:    s.Session.CreatedAt,
		UpdatedAt:    s.Session.UpdatedAt,
	}
	if s.LastMessage != nil {
		preview := util.Truncate(s.LastMessage.Content, util.PreviewLength, "") + util.PreviewSuffix
		meta.LastMessagePreview = &preview
	}
	return meta
}
