package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// CreateTaskInput carries the fields needed to create a task. Priority may be
// empty, in which case MEDIUM is used.
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   string
	AssignedTo  *string
	Priority    string
}

// ListTasksInput carries the optional list filters as raw query values.
type ListTasksInput struct {
	ProjectID  string
	AssignedTo string
	Status     string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, in ListTasksInput) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	TaskActivity(ctx context.Context, id string) ([]*domain.TaskEvent, error)
}

// WorkflowService owns task status transitions.
type WorkflowService interface {
	SetStatus(ctx context.Context, taskID, status string) (*domain.Task, error)
}
