package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studybuddy/internal/models"
	"studybuddy/internal/service"
)

// ChatHandler handles chat API requests
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Handle handles chat requests
// @Summary Send chat message
// @Description Send a message to the tutor. Without conversation_id a new session is opened.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat request"
// @Success 200 {object} models.APIResponse{data=models.ChatResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/chat [post]
func (h *ChatHandler) Handle(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.chatService.Send(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "processing chat", err)
		return
	}

	respondSuccess(c, http.StatusOK, resp)
}

// CreateSession opens an empty chat session
// @Summary Create chat session
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatSessionCreateRequest true "Session request"
// @Success 201 {object} models.APIResponse{data=models.ChatSessionMetadata}
// @Failure 400 {object} models.APIResponse
// @Router /api/chat/sessions [post]
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req models.ChatSessionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	meta, err := h.chatService.CreateSession(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, "creating chat session", err)
		return
	}

	respondSuccess(c, http.StatusCreated, meta)
}

// ListSessions lists chat sessions, most recently updated first
// @Summary List chat sessions
// @Tags chat
// @Produce json
// @Param class_id query string false "Filter by class"
// @Success 200 {object} models.APIResponse{data=models.ChatSessionListResponse}
// @Router /api/chat/sessions [get]
func (h *ChatHandler) ListSessions(c *gin.Context) {
	resp, err := h.chatService.ListSessions(c.Request.Context(), c.Query("class_id"))
	if err != nil {
		respondServiceError(c, "listing chat sessions", err)
		return
	}

	respondSuccess(c, http.StatusOK, resp)
}

// GetSession returns a session with its messages
// @Summary Get chat session
// @Tags chat
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.APIResponse{data=models.ChatSessionDetail}
// @Failure 404 {object} models.APIResponse
// @Router /api/chat/sessions/{id} [get]
func (h *ChatHandler) GetSession(c *gin.Context) {
	detail, err := h.chatService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "retrieving chat session", err)
		return
	}

	respondSuccess(c, http.StatusOK, detail)
}

// RenameSession changes a session title, read from ?title= or the JSON body
// @Summary Rename chat session
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param title query string false "New title"
// @Param request body models.ChatSessionTitleRequest false "New title"
// @Success 200 {object} models.APIResponse{data=models.ChatSessionMetadata}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/chat/sessions/{id}/title [put]
func (h *ChatHandler) RenameSession(c *gin.Context) {
	var req models.ChatSessionTitleRequest
	var err error
	if _, ok := c.GetQuery("title"); ok {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		respondBindError(c, err)
		return
	}

	meta, err := h.chatService.RenameSession(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		respondServiceError(c, "updating chat session", err)
		return
	}

	respondSuccess(c, http.StatusOK, meta)
}

// DeleteSession removes a session and its messages
// @Summary Delete chat session
// @Tags chat
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /api/chat/sessions/{id} [delete]
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.chatService.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, "deleting chat session", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearMessages empties a session's message log
// @Summary Clear chat messages
// @Tags chat
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} models.APIResponse
// @Router /api/chat/sessions/{id}/messages [delete]
func (h *ChatHandler) ClearMessages(c *gin.Context) {
	if err := h.chatService.ClearMessages(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, "clearing chat messages", err)
		return
	}

	c.Status(http.StatusNoContent)
}
