package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aditraka/go-taskpilot-backend/internal/model"
	"github.com/aditraka/go-taskpilot-backend/pkg/apierrors"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService calls the Gemini generateContent API, single-turn or with a
// running message history. Stateless; every call is an independent round
// trip with the client's default timeout and no retries.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func NewGeminiService(apiKey, modelName, baseURL string, log *zap.Logger) *GeminiService {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &GeminiService{
		apiKey:  apiKey,
		model:   modelName,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

func (s *GeminiService) generate(ctx context.Context, contents []geminiContent) (string, error) {
	b, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apierrors.Internal("Failed to get response from Gemini", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ge geminiError
		_ = json.Unmarshal(body, &ge)
		s.log.Error("gemini call failed",
			zap.Int("status", resp.StatusCode),
			zap.String("message", ge.Error.Message))
		return "", apierrors.Upstream("get response from Gemini", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", apierrors.Model("Failed to get response from Gemini")
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", apierrors.Model("Gemini returned no usable text")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", apierrors.Model("Gemini returned no usable text")
	}
	return text, nil
}

// GenerateText answers a single prompt.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: prompt}}},
	})
}

// GenerateChat answers the latest turn of a role-tagged conversation. Any
// role other than "user" is sent as "model".
func (s *GeminiService) GenerateChat(ctx context.Context, messages []model.ChatMessage) (string, error) {
	contents := make([]geminiContent, 0, len(messages))
	for _, m := range messages {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}
	return s.generate(ctx, contents)
}

// BreakdownTask asks the model to split a task into subtasks and parses the
// free-text reply into an ordered list of descriptions. An empty list is a
// valid result.
func (s *GeminiService) BreakdownTask(ctx context.Context, taskContent, additionalDetails string) ([]string, error) {
	prompt := fmt.Sprintf(`Break down the following task into smaller, actionable subtasks. Each subtask should be a short, clear instruction. Provide only the list of subtasks, one per line, with no numbering or bullet points. Task: %q`, taskContent)
	if strings.TrimSpace(additionalDetails) != "" {
		prompt += "\n\nAdditional context and requirements: " + additionalDetails
	}

	text, err := s.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseSubtasks(text), nil
}

// listMarker matches a leading run of digits, dots, dashes, asterisks,
// closing parens and whitespace, i.e. the numbering/bulleting the model was
// told not to emit but often does anyway.
var listMarker = regexp.MustCompile(`^[\s\d.\-*)]+`)

// parseSubtasks treats each physical line as one subtask: blank lines are
// dropped, leading list markers stripped, and lines that end up empty
// discarded. Multi-line subtask text from the model will be split; that is
// accepted behavior, not silently repaired.
func parseSubtasks(text string) []string {
	var subtasks []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cleaned := strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if cleaned == "" {
			continue
		}
		subtasks = append(subtasks, cleaned)
	}
	return subtasks
}
