package handlers

import (
	"context"
	"net/http"

	"tailortalk/models"
	"tailortalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatService answers one user message within a session.
type ChatService interface {
	Chat(ctx context.Context, message, sessionID string) (reply string, id string, err error)
}

// ChatHandler serves the conversational booking endpoint.
type ChatHandler struct {
	Service ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// HandleChat accepts {"message", "session_id"} and replies with the
// assistant's answer and the session id to send next time.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := getLogger(c)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	reply, sessionID, err := h.Service.Chat(c.Request.Context(), *req.Message, req.SessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Chat failed", err.Error(), zap.String("sessionID", sessionID))
		return
	}

	logger.Debug("Chat turn answered", zap.String("sessionID", sessionID))
	c.JSON(http.StatusOK, models.ChatResponse{Response: reply, SessionID: sessionID})
}
