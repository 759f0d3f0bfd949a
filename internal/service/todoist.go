package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aditraka/go-taskpilot-backend/internal/model"
	"github.com/aditraka/go-taskpilot-backend/internal/repository"
	"github.com/aditraka/go-taskpilot-backend/pkg/apierrors"
)

const defaultTodoistBaseURL = "https://api.todoist.com/rest/v2"

// TodoistService talks to the Todoist REST v2 API with the token resolved
// for the calling user. It holds no per-user state; every call resolves its
// own token.
type TodoistService struct {
	Resolver *CredentialResolver
	Store    repository.TokenStore
	BaseURL  string
	Client   *http.Client
	Log      *zap.Logger

	// now is swapped in tests to pin "today" for the active filter.
	now func() time.Time
}

func NewTodoistService(resolver *CredentialResolver, store repository.TokenStore, baseURL string, log *zap.Logger) *TodoistService {
	if baseURL == "" {
		baseURL = defaultTodoistBaseURL
	}
	return &TodoistService{
		Resolver: resolver,
		Store:    store,
		BaseURL:  baseURL,
		Client:   &http.Client{Timeout: 20 * time.Second},
		Log:      log,
		now:      time.Now,
	}
}

// doRequest performs an authenticated call and returns status plus body.
// Transport-level failures come back as errors; non-success statuses are the
// caller's to judge.
func (s *TodoistService) doRequest(ctx context.Context, token, method, path string, payload interface{}) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

// GetTasks lists the user's tasks. filter=="active" drops tasks whose due
// date is before today; tasks without a due date are always active. Upstream
// order is preserved.
func (s *TodoistService) GetTasks(ctx context.Context, userID, filter string) ([]model.Task, error) {
	resolved, err := s.Resolver.ResolveToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	status, body, err := s.doRequest(ctx, resolved.Token, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, apierrors.Internal("Failed to fetch tasks", err)
	}
	if status < 200 || status >= 300 {
		s.Log.Error("todoist list failed", zap.Int("status", status), zap.String("user_id", userID))
		return nil, apierrors.Upstream("fetch tasks", status)
	}

	var tasks []model.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, apierrors.Internal("Failed to decode tasks", err)
	}
	for i := range tasks {
		normalizeTask(&tasks[i])
	}

	if filter == "active" {
		tasks = s.filterActive(tasks)
	}
	return tasks, nil
}

// filterActive keeps tasks due today or later, and all tasks with no due
// date. Time of day is ignored; only the calendar date counts.
func (s *TodoistService) filterActive(tasks []model.Task) []model.Task {
	today := s.today()
	active := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Due == nil || t.Due.Date == "" {
			active = append(active, t)
			continue
		}
		due, err := time.ParseInLocation("2006-01-02", t.Due.Date, time.Local)
		if err != nil {
			// unparsable due date, keep the task rather than drop it silently
			active = append(active, t)
			continue
		}
		if !due.Before(today) {
			active = append(active, t)
		}
	}
	return active
}

func (s *TodoistService) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.Local)
}

// CompleteTask closes the task upstream. No payload on success; the caller
// refreshes or optimistically updates its own view.
func (s *TodoistService) CompleteTask(ctx context.Context, userID, taskID string) error {
	resolved, err := s.Resolver.ResolveToken(ctx, userID)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/tasks/%s/close", taskID)
	status, _, err := s.doRequest(ctx, resolved.Token, http.MethodPost, path, nil)
	if err != nil {
		return apierrors.Internal("Failed to complete task", err)
	}
	if status < 200 || status >= 300 {
		s.Log.Error("todoist close failed", zap.Int("status", status), zap.String("task_id", taskID))
		return apierrors.Upstream("complete task", status)
	}
	return nil
}

// CreateTask creates a task upstream and returns it with its assigned id.
func (s *TodoistService) CreateTask(ctx context.Context, userID string, args model.CreateTaskArgs) (*model.Task, error) {
	resolved, err := s.Resolver.ResolveToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	status, body, err := s.doRequest(ctx, resolved.Token, http.MethodPost, "/tasks", args)
	if err != nil {
		return nil, apierrors.Internal("Failed to create task", err)
	}
	if status < 200 || status >= 300 {
		s.Log.Error("todoist create failed", zap.Int("status", status), zap.String("content", args.Content))
		return nil, apierrors.Upstream("create task", status)
	}

	var task model.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, apierrors.Internal("Failed to decode created task", err)
	}
	normalizeTask(&task)
	return &task, nil
}

// StoreToken persists a user's Todoist token (connect flow).
func (s *TodoistService) StoreToken(ctx context.Context, userID, token string) error {
	if err := s.Store.UpsertToken(ctx, userID, token); err != nil {
		return apierrors.Internal("Failed to connect Todoist account", err)
	}
	s.Log.Info("todoist token stored", zap.String("user_id", userID))
	return nil
}

// normalizeTask fills required fields at the fetch boundary so downstream
// code never rechecks field presence. Priority outside 1..4 collapses to the
// lowest.
func normalizeTask(t *model.Task) {
	if t.Priority < 1 || t.Priority > 4 {
		t.Priority = 1
	}
	if t.Due != nil && t.Due.Date == "" {
		t.Due = nil
	}
}
