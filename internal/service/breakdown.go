package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aditraka/go-taskpilot-backend/internal/model"
)

// TaskBreaker produces subtask descriptions for a task.
type TaskBreaker interface {
	BreakdownTask(ctx context.Context, taskContent, additionalDetails string) ([]string, error)
}

// TaskCreator materializes a task upstream.
type TaskCreator interface {
	CreateTask(ctx context.Context, userID string, args model.CreateTaskArgs) (*model.Task, error)
}

// BreakdownPipeline turns one task into many: ask the model for subtask
// descriptions, then create each as a child of the original task, one at a
// time in model order. Creation is not transactional; a failure partway
// leaves earlier subtasks in place.
type BreakdownPipeline struct {
	AI    TaskBreaker
	Tasks TaskCreator
	Log   *zap.Logger
}

func NewBreakdownPipeline(ai TaskBreaker, tasks TaskCreator, log *zap.Logger) *BreakdownPipeline {
	return &BreakdownPipeline{AI: ai, Tasks: tasks, Log: log}
}

// Run returns the subtasks created so far together with the first creation
// error, if any. An empty model reply yields an empty, successful result.
func (p *BreakdownPipeline) Run(ctx context.Context, userID, taskContent, parentID, additionalDetails string) ([]model.Task, error) {
	descriptions, err := p.AI.BreakdownTask(ctx, taskContent, additionalDetails)
	if err != nil {
		return nil, err
	}
	p.Log.Info("task breakdown produced subtasks",
		zap.String("parent_id", parentID),
		zap.Int("count", len(descriptions)))

	created := make([]model.Task, 0, len(descriptions))
	for _, desc := range descriptions {
		task, err := p.Tasks.CreateTask(ctx, userID, model.CreateTaskArgs{
			Content:  desc,
			ParentID: parentID,
		})
		if err != nil {
			p.Log.Error("subtask creation failed",
				zap.String("parent_id", parentID),
				zap.String("content", desc),
				zap.Error(err))
			return created, err
		}
		created = append(created, *task)
	}
	return created, nil
}
