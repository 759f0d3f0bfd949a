package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aditraka/go-taskpilot-backend/internal/middleware"
	"github.com/aditraka/go-taskpilot-backend/internal/model"
	"github.com/aditraka/go-taskpilot-backend/internal/service"
	"github.com/aditraka/go-taskpilot-backend/pkg/apierrors"
)

// TaskService is what the task handlers need from the Todoist layer.
type TaskService interface {
	GetTasks(ctx context.Context, userID, filter string) ([]model.Task, error)
	CompleteTask(ctx context.Context, userID, taskID string) error
	StoreToken(ctx context.Context, userID, token string) error
}

// Decomposer runs the AI breakdown pipeline for one task.
type Decomposer interface {
	Run(ctx context.Context, userID, taskContent, parentID, additionalDetails string) ([]model.Task, error)
}

type TaskHandler struct {
	Tasks     TaskService
	Breakdown Decomposer
	Log       *zap.Logger
}

func NewTaskHandler(tasks TaskService, breakdown Decomposer, log *zap.Logger) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Breakdown: breakdown, Log: log}
}

// ListTasks returns the user's tasks in upstream order. ?filter=active drops
// tasks already past their due date.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	filter := c.Query("filter")

	tasks, err := h.Tasks.GetTasks(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	// The fetch itself is stateless; the client may reuse this for a minute.
	c.Header("Cache-Control", "private, max-age=60")
	c.JSON(http.StatusOK, tasks)
}

type taskWithStatus struct {
	model.Task
	Completed bool `json:"completed"`
}

// ListAllTasks returns every open task with its completion status normalized
// in, plus the nested parent/child view of the same list. Todoist does not
// return completed tasks on the list call, so completed is always false here.
func (h *TaskHandler) ListAllTasks(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	tasks, err := h.Tasks.GetTasks(c.Request.Context(), userID, "")
	if err != nil {
		respondError(c, err)
		return
	}

	flat := make([]taskWithStatus, 0, len(tasks))
	for _, t := range tasks {
		flat = append(flat, taskWithStatus{Task: t, Completed: t.IsCompleted})
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": flat,
		"tree":  service.BuildTree(tasks),
	})
}

// CompleteTask closes one task upstream.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req model.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId is required"})
		return
	}

	if err := h.Tasks.CompleteTask(c.Request.Context(), userID, req.TaskID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BreakdownTask asks the model for subtasks of the given task and creates
// them under it. Subtasks created before a failure stay created; the
// response then carries both the error and what was materialized.
func (h *TaskHandler) BreakdownTask(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req model.BreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TaskContent == "" || req.ParentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing taskContent or parentId"})
		return
	}

	created, err := h.Breakdown.Run(c.Request.Context(), userID, req.TaskContent, req.ParentID, req.AdditionalDetails)
	if err != nil {
		ae := apierrors.From(err)
		c.JSON(ae.Status, gin.H{"error": ae.Message, "subtasks": created})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtasks": created})
}

// ConnectTodoist stores the user's Todoist API token.
func (h *TaskHandler) ConnectTodoist(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req model.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	if err := h.Tasks.StoreToken(c.Request.Context(), userID, req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondError(c *gin.Context, err error) {
	ae := apierrors.From(err)
	c.JSON(ae.Status, gin.H{"error": ae.Message})
}
