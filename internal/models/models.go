package models

import "time"

// ===== Quiz Models =====

// QuizQuestion represents one generated question. Immutable once stored.
type QuizQuestion struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Quiz represents a stored quiz with its questions
type Quiz struct {
	ID          string         `json:"id"`
	ClassID     string         `json:"class_id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Difficulty  string         `json:"difficulty"`
	Questions   []QuizQuestion `json:"questions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Clone returns a deep copy of the quiz
func (q *Quiz) Clone() *Quiz {
	if q == nil {
		return nil
	}
	out := *q
	if q.Description != nil {
		d := *q.Description
		out.Description = &d
	}
	out.Questions = make([]QuizQuestion, len(q.Questions))
	for i, qq := range q.Questions {
		qq.Options = append([]string(nil), qq.Options...)
		out.Questions[i] = qq
	}
	return &out
}

// Metadata returns the quiz without its questions
func (q *Quiz) Metadata() QuizMetadata {
	return QuizMetadata{
		ID:            q.ID,
		ClassID:       q.ClassID,
		Title:         q.Title,
		Description:   q.Description,
		Difficulty:    q.Difficulty,
		QuestionCount: len(q.Questions),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

// QuizMetadata represents a quiz listing entry (questions excluded)
type QuizMetadata struct {
	ID            string    `json:"id"`
	ClassID       string    `json:"class_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Difficulty    string    `json:"difficulty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuizListResponse represents a list of quizzes
type QuizListResponse struct {
	Quizzes []QuizMetadata `json:"quizzes"`
	Total   int            `json:"total"`
}

// QuizCreateRequest represents a request to generate and store a quiz
type QuizCreateRequest struct {
	ClassID       string  `json:"class_id" binding:"required,notblank"`
	Title         string  `json:"title" binding:"required,notblank"`
	Description   *string `json:"description,omitempty"`
	Focus         *string `json:"focus,omitempty"`
	QuestionCount *int    `json:"question_count,omitempty" binding:"omitempty,min=1,max=50"`
	Difficulty    *string `json:"difficulty,omitempty"`
}

// QuizUpdateRequest represents a partial metadata update; nil fields are untouched
type QuizUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Difficulty  *string `json:"difficulty,omitempty"`
}

// QuizSubmissionRequest represents submitted answers keyed by question id
type QuizSubmissionRequest struct {
	Answers   map[string]string `json:"answers"`
	TimeTaken *int              `json:"time_taken,omitempty" binding:"omitempty,min=0"`
}

// QuestionResult represents the grading of one question
type QuestionResult struct {
	QuestionID    string  `json:"question_id"`
	QuestionText  string  `json:"question_text"`
	UserAnswer    *string `json:"user_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
	Explanation   string  `json:"explanation"`
}

// QuizSubmissionResult represents a scored submission. Never stored.
type QuizSubmissionResult struct {
	QuizID       string           `json:"quiz_id"`
	Score        int              `json:"score"`
	CorrectCount int              `json:"correct_count"`
	TotalCount   int              `json:"total_count"`
	TimeTaken    *int             `json:"time_taken"`
	Results      []QuestionResult `json:"results"`
	Timestamp    time.Time        `json:"timestamp"`
}

// ===== Chat Models =====

// ChatSession represents a stored conversation
type ChatSession struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage represents one message in a session log
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSessionMetadata represents a session listing entry
type ChatSessionMetadata struct {
	ID                 string    `json:"id"`
	ClassID            string    `json:"class_id"`
	Title              string    `json:"title"`
	MessageCount       int       `json:"message_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	LastMessagePreview *string   `json:"last_message_preview"`
}

// ChatSessionDetail represents a session with its full message history
type ChatSessionDetail struct {
	ID        string        `json:"id"`
	ClassID   string        `json:"class_id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ChatSessionListResponse represents a list of sessions
type ChatSessionListResponse struct {
	Sessions []ChatSessionMetadata `json:"sessions"`
	Total    int                   `json:"total"`
}

// ChatSessionCreateRequest represents a request to open a session
type ChatSessionCreateRequest struct {
	ClassID string  `json:"class_id" binding:"required,notblank"`
	Title   *string `json:"title,omitempty"`
}

// ChatSessionTitleRequest represents a rename request
type ChatSessionTitleRequest struct {
	Title string `json:"title" form:"title" binding:"required,notblank"`
}

// ChatRequest represents a chat message request
type ChatRequest struct {
	ClassID        string  `json:"class_id" binding:"required,notblank"`
	Message        string  `json:"message" binding:"required,notblank"`
	ConversationID *string `json:"conversation_id,omitempty"`
	Focus          *string `json:"focus,omitempty"`
}

// ChatResponse represents a chat response
type ChatResponse struct {
	Response       string    `json:"response"`
	ConversationID string    `json:"conversation_id"`
	Timestamp      time.Time `json:"timestamp"`
}

// ChatTurn is one prior message passed to the completion call
type ChatTurn struct {
	Role    string
	Content string
}

// ===== Study Generation Models =====

// GenerateRequest represents a one-shot flashcard or quiz question request
type GenerateRequest struct {
	ClassID string  `json:"class_id" binding:"required,notblank"`
	Focus   *string `json:"focus,omitempty"`
	Count   *int    `json:"count,omitempty" binding:"omitempty,min=1,max=50"`
}

// Flashcard represents a single generated flashcard
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardResponse represents generated flashcards
type FlashcardResponse struct {
	ClassID    string      `json:"class_id"`
	Flashcards []Flashcard `json:"flashcards"`
	Total      int         `json:"total"`
}

// QuizQuestionsResponse represents generated, unsaved quiz questions
type QuizQuestionsResponse struct {
	ClassID   string         `json:"class_id"`
	Questions []QuizQuestion `json:"questions"`
	Total     int            `json:"total"`
}

// ===== Quiz Bank Models =====

// BankQuizRequest represents a request for sample questions from the built-in bank
type BankQuizRequest struct {
	Topic        string `json:"topic"`
	NumQuestions *int   `json:"num_questions,omitempty" binding:"omitempty,min=1,max=50"`
}

// BankQuestion represents a bank question without its answer
type BankQuestion struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
	Options    []string `json:"options"`
}

// BankQuizResponse represents a sample drawn from the bank
type BankQuizResponse struct {
	Topic        string         `json:"topic"`
	NumQuestions int            `json:"num_questions"`
	Questions    []BankQuestion `json:"questions"`
}

// ===== RAG Server Models =====

// RAGMaterialSearchResult represents one class material excerpt from the RAG server
type RAGMaterialSearchResult struct {
	DocumentID string  `json:"document_id"`
	Content    string  `json:"content"`
	Score      float32 `json:"score"`
}

// ===== API Response Wrappers =====

// APIResponse represents a standard API response wrapper
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// ErrorInfo represents error details in API response
type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Metadata represents response metadata
type Metadata struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}
