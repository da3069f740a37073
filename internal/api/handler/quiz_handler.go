package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studybuddy/internal/models"
	"studybuddy/internal/service"
)

// QuizHandler handles stored quiz requests
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// Create generates and stores a quiz
// @Summary Create quiz
// @Description Generate quiz questions from class materials and store them
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body models.QuizCreateRequest true "Quiz request"
// @Success 201 {object} models.APIResponse{data=models.Quiz}
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/quizzes [post]
func (h *QuizHandler) Create(c *gin.Context) {
	var req models.QuizCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	quiz, err := h.quizService.Generate(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "creating quiz", err)
		return
	}

	respondSuccess(c, http.StatusCreated, quiz)
}

// List lists stored quizzes
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Param class_id query string false "Filter by class"
// @Success 200 {object} models.APIResponse{data=models.QuizListResponse}
// @Router /api/quizzes [get]
func (h *QuizHandler) List(c *gin.Context) {
	resp, err := h.quizService.List(c.Request.Context(), c.Query("class_id"))
	if err != nil {
		respondServiceError(c, "listing quizzes", err)
		return
	}

	respondSuccess(c, http.StatusOK, resp)
}

// Get returns one quiz with its questions
// @Summary Get quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} models.APIResponse{data=models.Quiz}
// @Failure 404 {object} models.APIResponse
// @Router /api/quizzes/{id} [get]
func (h *QuizHandler) Get(c *gin.Context) {
	quiz, err := h.quizService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "retrieving quiz", err)
		return
	}

	respondSuccess(c, http.StatusOK, quiz)
}

// Update changes quiz metadata
// @Summary Update quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body models.QuizUpdateRequest true "Fields to change"
// @Success 200 {object} models.APIResponse{data=models.QuizMetadata}
// @Failure 404 {object} models.APIResponse
// @Router /api/quizzes/{id} [put]
func (h *QuizHandler) Update(c *gin.Context) {
	var req models.QuizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	meta, err := h.quizService.UpdateMetadata(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, "updating quiz", err)
		return
	}

	respondSuccess(c, http.StatusOK, meta)
}

// Delete removes a quiz
// @Summary Delete quiz
// @Tags quizzes
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /api/quizzes/{id} [delete]
func (h *QuizHandler) Delete(c *gin.Context) {
	if err := h.quizService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, "deleting quiz", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Submit grades a set of answers
// @Summary Submit quiz answers
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body models.QuizSubmissionRequest true "Answers keyed by question id"
// @Success 200 {object} models.APIResponse{data=models.QuizSubmissionResult}
// @Failure 404 {object} models.APIResponse
// @Router /api/quizzes/{id}/submit [post]
func (h *QuizHandler) Submit(c *gin.Context) {
	var req models.QuizSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.quizService.Submit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, "submitting quiz", err)
		return
	}

	respondSuccess(c, http.StatusOK, result)
}
