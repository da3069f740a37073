package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"studybuddy/internal/models"
	"studybuddy/internal/prompts"
	"studybuddy/internal/util"
)

// StudyService generates flashcards and practice questions that are not stored
type StudyService struct {
	assistant *AssistantService
	logger    *util.Logger
}

// NewStudyService creates a new study service
func NewStudyService(assistant *AssistantService) *StudyService {
	return &StudyService{
		assistant: assistant,
		logger:    util.NewLogger("StudyService"),
	}
}

// GenerateFlashcards returns count flashcards for the class (10 when count is nil)
func (ss *StudyService) GenerateFlashcards(ctx context.Context, req *models.GenerateRequest) (*models.FlashcardResponse, error) {
	count := countOrDefault(req.Count, util.DefaultFlashcardCount)
	focus := deref(req.Focus)

	raw, err := ss.assistant.Run(ctx, RunRequest{
		Mode:    prompts.ModeFlashcard,
		ClassID: req.ClassID,
		Message: prompts.FlashcardInstruction(count, focus),
		Focus:   focus,
		Count:   count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate flashcards: %w", err)
	}

	payloads, err := util.ParseFlashcards(raw)
	if err != nil {
		ss.logger.Error("Model returned unusable flashcards", err, "class_id", req.ClassID)
		return nil, err
	}

	cards := lo.Map(payloads, func(p util.FlashcardPayload, _ int) models.Flashcard {
		return models.Flashcard{Front: p.Front, Back: p.Back}
	})

	ss.logger.Success("Flashcards generated", "class_id", req.ClassID, "count", len(cards))
	return &models.FlashcardResponse{ClassID: req.ClassID, Flashcards: cards, Total: len(cards)}, nil
}

// GenerateQuizQuestions returns practice questions with ids q1..qN
func (ss *StudyService) GenerateQuizQuestions(ctx context.Context, req *models.GenerateRequest) (*models.QuizQuestionsResponse, error) {
	count := countOrDefault(req.Count, util.DefaultQuestionCount)
	focus := deref(req.Focus)

	raw, err := ss.assistant.Run(ctx, RunRequest{
		Mode:       prompts.ModeQuiz,
		ClassID:    req.ClassID,
		Message:    prompts.QuizInstruction(count, focus),
		Focus:      focus,
		Count:      count,
		Difficulty: util.DefaultDifficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate quiz questions: %w", err)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		ss.logger.Error("Model returned unusable questions", err, "class_id", req.ClassID)
		return nil, err
	}

	return &models.QuizQuestionsResponse{ClassID: req.ClassID, Questions: questions, Total: len(questions)}, nil
}

func countOrDefault(n *int, def int) int {
	if n == nil || *n <= 0 {
		return def
	}
	return *n
}
