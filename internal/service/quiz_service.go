package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"studybuddy/internal/models"
	"studybuddy/internal/prompts"
	"studybuddy/internal/store"
	"studybuddy/internal/util"
)

// QuizService generates, stores and grades quizzes
type QuizService struct {
	assistant *AssistantService
	repo      store.QuizRepository
	now       func() time.Time
	newID     func() string
	logger    *util.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(assistant *AssistantService, repo store.QuizRepository) *QuizService {
	return &QuizService{
		assistant: assistant,
		repo:      repo,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
		logger:    util.NewLogger("QuizService"),
	}
}

// Generate asks the model for questions and stores the resulting quiz.
// Nothing is stored when the completion cannot be parsed.
func (qs *QuizService) Generate(ctx context.Context, req *models.QuizCreateRequest) (*models.Quiz, error) {
	qs.logger.Start("Generate Quiz")
	defer qs.logger.End("Generate Quiz")

	count := countOrDefault(req.QuestionCount, util.DefaultQuestionCount)
	difficulty := util.DefaultDifficulty
	if req.Difficulty != nil && strings.TrimSpace(*req.Difficulty) != "" {
		difficulty = *req.Difficulty
	}
	focus := deref(req.Focus)

	raw, err := qs.assistant.Run(ctx, RunRequest{
		Mode:       prompts.ModeQuiz,
		ClassID:    req.ClassID,
		Message:    prompts.QuizInstruction(count, focus),
		Focus:      focus,
		Count:      count,
		Difficulty: difficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate quiz questions: %w", err)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		qs.logger.Error("Model returned an unusable quiz", err, "class_id", req.ClassID)
		return nil, err
	}
	if len(questions) != count {
		qs.logger.Warn("Question count differs from request", nil, "requested", count, "received", len(questions))
	}

	now := qs.now()
	quiz := &models.Quiz{
		ID:          qs.newID(),
		ClassID:     req.ClassID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  difficulty,
		Questions:   questions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := qs.repo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to store quiz: %w", err)
	}

	qs.logger.Success("Quiz stored", "quiz_id", quiz.ID, "questions", len(questions))
	return quiz, nil
}

// List returns quiz metadata, optionally filtered by class
func (qs *QuizService) List(ctx context.Context, classID string) (*models.QuizListResponse, error) {
	quizzes, err := qs.repo.List(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	items := lo.Map(quizzes, func(q *models.Quiz, _ int) models.QuizMetadata {
		return q.Metadata()
	})
	return &models.QuizListResponse{Quizzes: items, Total: len(items)}, nil
}

// Get returns the full quiz
func (qs *QuizService) Get(ctx context.Context, id string) (*models.Quiz, error) {
	return qs.repo.Get(ctx, id)
}

// UpdateMetadata applies the supplied fields only and always advances updated_at
func (qs *QuizService) UpdateMetadata(ctx context.Context, id string, req *models.QuizUpdateRequest) (*models.QuizMetadata, error) {
	updated, err := qs.repo.Update(ctx, id, func(q *models.Quiz) error {
		if req.Title != nil {
			q.Title = *req.Title
		}
		if req.Description != nil {
			d := *req.Description
			q.Description = &d
		}
		if req.Difficulty != nil {
			q.Difficulty = *req.Difficulty
		}
		q.UpdatedAt = qs.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	meta := updated.Metadata()
	return &meta, nil
}

// Delete removes a quiz
func (qs *QuizService) Delete(ctx context.Context, id string) error {
	if err := qs.repo.Delete(ctx, id); err != nil {
		return err
	}
	qs.logger.Info("Quiz deleted", "quiz_id", id)
	return nil
}

// Submit grades answers against the stored quiz. The quiz is not modified.
func (qs *QuizService) Submit(ctx context.Context, id string, req *models.QuizSubmissionRequest) (*models.QuizSubmissionResult, error) {
	quiz, err := qs.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := Grade(quiz, req.Answers)
	result.TimeTaken = req.TimeTaken
	result.Timestamp = qs.now()
	return result, nil
}

// Grade compares answers to the quiz by exact text. Missing answers count as wrong.
func Grade(quiz *models.Quiz, answers map[string]string) *models.QuizSubmissionResult {
	results := make([]models.QuestionResult, 0, len(quiz.Questions))
	correct := 0

	for _, q := range quiz.Questions {
		var userAnswer *string
		if a, ok := answers[q.ID]; ok {
			a := a
			userAnswer = &a
		}
		isCorrect := userAnswer != nil && *userAnswer == q.Answer
		if isCorrect {
			correct++
		}

		results = append(results, models.QuestionResult{
			QuestionID:    q.ID,
			QuestionText:  q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.Answer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	return &models.QuizSubmissionResult{
		QuizID:       quiz.ID,
		Score:        score(correct, len(quiz.Questions)),
		CorrectCount: correct,
		TotalCount:   len(quiz.Questions),
		Results:      results,
	}
}

// score is the rounded percentage; ties round to even
func score(correct, total int) int {
	if total == 0 {
		return util.MinScore
	}
	return int(math.RoundToEven(float64(correct) / float64(total) * 100))
}

// parseQuestions validates a completion and assigns ids q1..qN in order
func parseQuestions(raw string) ([]models.QuizQuestion, error) {
	payloads, err := util.ParseQuizQuestions(raw)
	if err != nil {
		return nil, err
	}

	return lo.Map(payloads, func(p util.QuestionPayload, i int) models.QuizQuestion {
		return models.QuizQuestion{
			ID:          fmt.Sprintf("q%d", i+1),
			Question:    p.Question,
			Options:     p.Options,
			Answer:      p.Answer,
			Explanation: p.Explanation,
		}
	}), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
