package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"studybuddy/internal/catalog"
	"studybuddy/internal/config"
	"studybuddy/internal/quizbank"
	"studybuddy/internal/service"
	"studybuddy/internal/store"
)

const quizReply = `[{"question":"Q1","options":["A","B"],"answer":"A","explanation":"e1"},{"question":"Q2","options":["C","D"],"answer":"D","explanation":"e2"}]`

type stubCompleter struct {
	mu    sync.Mutex
	reply string
}

func (s *stubCompleter) Complete(_ context.Context, _ service.CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reply, nil
}

func (s *stubCompleter) set(reply string) {
	s.mu.Lock()
	s.reply = reply
	s.mu.Unlock()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubCompleter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{CORSOrigins: []string{"*"}, RAGTopK: 3}
	completer := &stubCompleter{reply: quizReply}
	classes := catalog.Default()
	assistant := service.NewAssistantService(cfg, completer, nil, classes)

	router := Router(cfg, Services{
		Quiz:    service.NewQuizService(assistant, store.NewMemoryQuizStore()),
		Chat:    service.NewChatService(assistant, store.NewMemoryChatStore()),
		Study:   service.NewStudyService(assistant),
		Bank:    quizbank.New(quizbank.Default().Questions(), rand.NewSource(1)),
		Classes: classes,
	})
	return router, completer
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestHealthRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/", "/health"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s returned %d", path, rec.Code)
		}
	}
}

func TestQuizLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/api/quizzes", map[string]interface{}{
		"class_id":       "cs101",
		"title":          "Midterm",
		"question_count": 2,
	})
	if rec.Code != http.StatusCreated || !env.Success {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	if env.Metadata.RequestID == "" {
		t.Errorf("expected request id in metadata")
	}
	var quiz struct {
		ID        string `json:"id"`
		Questions []struct {
			ID string `json:"id"`
		} `json:"questions"`
	}
	decodeData(t, env, &quiz)
	if len(quiz.Questions) != 2 || quiz.Questions[0].ID != "q1" {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}

	rec, env = doJSON(t, r, http.MethodGet, "/api/quizzes?class_id=cs101", nil)
	var list struct {
		Total int `json:"total"`
	}
	decodeData(t, env, &list)
	if rec.Code != http.StatusOK || list.Total != 1 {
		t.Fatalf("list returned %d total=%d", rec.Code, list.Total)
	}

	rec, env = doJSON(t, r, http.MethodPut, "/api/quizzes/"+quiz.ID, map[string]string{"title": "Final"})
	var meta struct {
		Title         string `json:"title"`
		QuestionCount int    `json:"question_count"`
	}
	decodeData(t, env, &meta)
	if rec.Code != http.StatusOK || meta.Title != "Final" || meta.QuestionCount != 2 {
		t.Fatalf("update returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, r, http.MethodPost, "/api/quizzes/"+quiz.ID+"/submit", map[string]interface{}{
		"answers": map[string]string{"q1": "A", "q2": "C"},
	})
	var result struct {
		Score        int `json:"score"`
		CorrectCount int `json:"correct_count"`
	}
	decodeData(t, env, &result)
	if rec.Code != http.StatusOK || result.Score != 50 || result.CorrectCount != 1 {
		t.Fatalf("submit returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/quizzes/"+quiz.ID, nil)
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("delete returned %d with body %q", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, r, http.MethodGet, "/api/quizzes/"+quiz.ID, nil)
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected 404 NOT_FOUND, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.Error.Message != "Error retrieving quiz: Quiz with ID '"+quiz.ID+"' not found" {
		t.Errorf("unexpected message %q", env.Error.Message)
	}
}

func TestCreateQuizValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "missing class", body: map[string]interface{}{"title": "T"}},
		{name: "blank title", body: map[string]interface{}{"class_id": "cs101", "title": "   "}},
		{name: "count too large", body: map[string]interface{}{"class_id": "cs101", "title": "T", "question_count": 51}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doJSON(t, r, http.MethodPost, "/api/quizzes", tt.body)
			if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "INVALID_REQUEST" {
				t.Fatalf("expected 400 INVALID_REQUEST, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateQuizMalformedModelOutput(t *testing.T) {
	r, completer := newTestRouter(t)
	completer.set("I cannot do that")

	rec, env := doJSON(t, r, http.MethodPost, "/api/quizzes", map[string]interface{}{"class_id": "cs101", "title": "T"})
	if rec.Code != http.StatusInternalServerError || env.Error == nil || env.Error.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected 500 INTERNAL_ERROR, got %d: %s", rec.Code, rec.Body.String())
	}

	_, env = doJSON(t, r, http.MethodGet, "/api/quizzes", nil)
	var list struct {
		Total int `json:"total"`
	}
	decodeData(t, env, &list)
	if list.Total != 0 {
		t.Fatalf("no quiz should be stored, got %d", list.Total)
	}
}

func TestChatRoutes(t *testing.T) {
	r, completer := newTestRouter(t)
	completer.set("Recursion is when a function calls itself.")

	rec, env := doJSON(t, r, http.MethodPost, "/api/chat", map[string]string{"class_id": "cs101", "message": "Explain recursion"})
	if rec.Code != http.StatusOK {
		t.Fatalf("chat returned %d: %s", rec.Code, rec.Body.String())
	}
	var chat struct {
		Response       string `json:"response"`
		ConversationID string `json:"conversation_id"`
	}
	decodeData(t, env, &chat)
	if chat.ConversationID == "" {
		t.Fatalf("expected conversation id")
	}

	rec, env = doJSON(t, r, http.MethodGet, "/api/chat/sessions/"+chat.ConversationID, nil)
	var detail struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	decodeData(t, env, &detail)
	if rec.Code != http.StatusOK || len(detail.Messages) != 2 {
		t.Fatalf("detail returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, r, http.MethodPut, "/api/chat/sessions/"+chat.ConversationID+"/title?title=Recursion", nil)
	var meta struct {
		Title string `json:"title"`
	}
	decodeData(t, env, &meta)
	if rec.Code != http.StatusOK || meta.Title != "Recursion" {
		t.Fatalf("rename by query returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, r, http.MethodPut, "/api/chat/sessions/"+chat.ConversationID+"/title", map[string]string{"title": "Base cases"})
	decodeData(t, env, &meta)
	if rec.Code != http.StatusOK || meta.Title != "Base cases" {
		t.Fatalf("rename by body returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/chat/sessions/"+chat.ConversationID+"/messages", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear returned %d", rec.Code)
	}

	rec, env = doJSON(t, r, http.MethodGet, "/api/chat/sessions?class_id=cs101", nil)
	var list struct {
		Total    int `json:"total"`
		Sessions []struct {
			MessageCount int `json:"message_count"`
		} `json:"sessions"`
	}
	decodeData(t, env, &list)
	if rec.Code != http.StatusOK || list.Total != 1 || list.Sessions[0].MessageCount != 0 {
		t.Fatalf("list returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/chat/sessions/"+chat.ConversationID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete returned %d", rec.Code)
	}
	rec, _ = doJSON(t, r, http.MethodDelete, "/api/chat/sessions/"+chat.ConversationID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat delete returned %d", rec.Code)
	}
}

func TestChatUnknownSession(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/api/chat", map[string]string{
		"class_id":        "cs101",
		"message":         "hi",
		"conversation_id": "missing",
	})
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateSessionRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/api/chat/sessions", map[string]string{"class_id": "math201"})
	var meta struct {
		Title string `json:"title"`
	}
	decodeData(t, env, &meta)
	if rec.Code != http.StatusCreated || meta.Title != "New Conversation" {
		t.Fatalf("create session returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStudyRoutes(t *testing.T) {
	r, completer := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/api/quiz", map[string]interface{}{"class_id": "cs101", "count": 2})
	var questions struct {
		Total int `json:"total"`
	}
	decodeData(t, env, &questions)
	if rec.Code != http.StatusOK || questions.Total != 2 {
		t.Fatalf("quiz returned %d: %s", rec.Code, rec.Body.String())
	}

	completer.set(`[{"front":"Stack","back":"LIFO"}]`)
	rec, env = doJSON(t, r, http.MethodPost, "/api/flashcards", map[string]interface{}{"class_id": "cs101", "count": 1})
	var cards struct {
		Total int `json:"total"`
	}
	decodeData(t, env, &cards)
	if rec.Code != http.StatusOK || cards.Total != 1 {
		t.Fatalf("flashcards returned %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = doJSON(t, r, http.MethodGet, "/api/classes", nil)
	var classes []struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &classes)
	if rec.Code != http.StatusOK || len(classes) != 4 {
		t.Fatalf("classes returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBankQuizRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/api/quiz/generate", nil)
	var resp struct {
		Topic        string                   `json:"topic"`
		NumQuestions int                      `json:"num_questions"`
		Questions    []map[string]interface{} `json:"questions"`
	}
	decodeData(t, env, &resp)
	if rec.Code != http.StatusOK || resp.Topic != "General" || resp.NumQuestions != 3 {
		t.Fatalf("bank quiz returned %d: %s", rec.Code, rec.Body.String())
	}
	for _, q := range resp.Questions {
		if _, ok := q["correct_index"]; ok {
			t.Fatalf("answer key must not be exposed")
		}
	}

	rec, env = doJSON(t, r, http.MethodPost, "/api/quiz/generate", map[string]interface{}{"topic": "lists", "num_questions": 1})
	decodeData(t, env, &resp)
	if rec.Code != http.StatusOK || resp.NumQuestions != 1 {
		t.Fatalf("bank quiz returned %d: %s", rec.Code, rec.Body.String())
	}
}
