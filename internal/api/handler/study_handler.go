package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studybuddy/internal/catalog"
	"studybuddy/internal/models"
	"studybuddy/internal/quizbank"
	"studybuddy/internal/service"
)

// StudyHandler handles one-shot study material generation
type StudyHandler struct {
	studyService *service.StudyService
	bank         *quizbank.Bank
	classes      *catalog.Catalog
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(studyService *service.StudyService, bank *quizbank.Bank, classes *catalog.Catalog) *StudyHandler {
	return &StudyHandler{
		studyService: studyService,
		bank:         bank,
		classes:      classes,
	}
}

// Flashcards generates flashcards
// @Summary Generate flashcards
// @Tags study
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Generation request"
// @Success 200 {object} models.APIResponse{data=models.FlashcardResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/flashcards [post]
func (h *StudyHandler) Flashcards(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.studyService.GenerateFlashcards(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "generating flashcards", err)
		return
	}

	respondSuccess(c, http.StatusOK, resp)
}

// Quiz generates practice questions without storing them
// @Summary Generate quiz questions
// @Tags study
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Generation request"
// @Success 200 {object} models.APIResponse{data=models.QuizQuestionsResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/quiz [post]
func (h *StudyHandler) Quiz(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.studyService.GenerateQuizQuestions(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "generating quiz", err)
		return
	}

	respondSuccess(c, http.StatusOK, resp)
}

// BankQuiz samples questions from the built-in question bank
// @Summary Sample bank questions
// @Tags study
// @Accept json
// @Produce json
// @Param request body models.BankQuizRequest false "Topic and size"
// @Success 200 {object} models.APIResponse{data=models.BankQuizResponse}
// @Failure 400 {object} models.APIResponse
// @Router /api/quiz/generate [post]
func (h *StudyHandler) BankQuiz(c *gin.Context) {
	var req models.BankQuizRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	respondSuccess(c, http.StatusOK, h.bank.Generate(&req))
}

// Classes lists the known classes
// @Summary List classes
// @Tags study
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]catalog.Class}
// @Router /api/classes [get]
func (h *StudyHandler) Classes(c *gin.Context) {
	respondSuccess(c, http.StatusOK, h.classes.List())
}
