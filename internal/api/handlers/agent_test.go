package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aditraka/go-taskpilot-backend/internal/api/handlers"
	"github.com/aditraka/go-taskpilot-backend/internal/middleware"
	"github.com/aditraka/go-taskpilot-backend/internal/model"
	"github.com/aditraka/go-taskpilot-backend/pkg/apierrors"
)

type agentFake struct {
	reply string
	err   error

	gotPrompt   string
	gotMessages []model.ChatMessage
}

func (f *agentFake) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.reply, f.err
}

func (f *agentFake) GenerateChat(ctx context.Context, messages []model.ChatMessage) (string, error) {
	f.gotMessages = messages
	return f.reply, f.err
}

func newAgentRouter(ai handlers.AgentService) *gin.Engine {
	h := handlers.NewAgentHandler(ai, zap.NewNop())
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.SessionAuth(testSecret))
	api.POST("/agent", h.Chat)
	return r
}

func TestAgent_PromptMode(t *testing.T) {
	fake := &agentFake{reply: "here is a plan"}
	r := newAgentRouter(fake)

	rec := doRequest(r, http.MethodPost, "/api/v1/agent", sessionToken(t, "u1"),
		`{"prompt":"plan my week"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "here is a plan", body["response"])
	assert.Equal(t, "plan my week", fake.gotPrompt)
	assert.Nil(t, fake.gotMessages)
}

func TestAgent_ChatModeWinsOverPrompt(t *testing.T) {
	fake := &agentFake{reply: "continuing"}
	r := newAgentRouter(fake)

	rec := doRequest(r, http.MethodPost, "/api/v1/agent", sessionToken(t, "u1"),
		`{"prompt":"ignored","messages":[{"role":"user","content":"hi"},{"role":"model","content":"hello"},{"role":"user","content":"more"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, fake.gotMessages, 3)
	assert.Equal(t, "more", fake.gotMessages[2].Content)
	assert.Empty(t, fake.gotPrompt)
}

func TestAgent_MissingInput(t *testing.T) {
	r := newAgentRouter(&agentFake{})

	rec := doRequest(r, http.MethodPost, "/api/v1/agent", sessionToken(t, "u1"), `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required parameters")
}

func TestAgent_ModelFailure(t *testing.T) {
	r := newAgentRouter(&agentFake{err: apierrors.Model("Gemini returned no usable text")})

	rec := doRequest(r, http.MethodPost, "/api/v1/agent", sessionToken(t, "u1"),
		`{"prompt":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gemini returned no usable text")
}

func TestAgent_Unauthenticated(t *testing.T) {
	r := newAgentRouter(&agentFake{})

	rec := doRequest(r, http.MethodPost, "/api/v1/agent", "", `{"prompt":"hello"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
