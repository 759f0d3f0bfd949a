package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aditraka/go-taskpilot-backend/internal/model"
)

// AgentService is the general-purpose assistant surface: one-shot prompt or
// running conversation.
type AgentService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateChat(ctx context.Context, messages []model.ChatMessage) (string, error)
}

type AgentHandler struct {
	AI  AgentService
	Log *zap.Logger
}

func NewAgentHandler(ai AgentService, log *zap.Logger) *AgentHandler {
	return &AgentHandler{AI: ai, Log: log}
}

// Chat answers either a single prompt or a role-tagged message history.
// Messages win when both are supplied.
func (h *AgentHandler) Chat(c *gin.Context) {
	var req model.AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters: 'prompt' or 'messages'"})
		return
	}

	var (
		response string
		err      error
	)
	switch {
	case len(req.Messages) > 0:
		response, err = h.AI.GenerateChat(c.Request.Context(), req.Messages)
	case req.Prompt != "":
		response, err = h.AI.GenerateText(c.Request.Context(), req.Prompt)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters: 'prompt' or 'messages'"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
