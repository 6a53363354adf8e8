package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// TaskFilter narrows List. Zero values match everything.
type TaskFilter struct {
	ProjectID  string
	AssignedTo string
	Status     domain.TaskStatus
}

// TaskRepository persists tasks. Create and Update check project_id and
// assigned_to against the store inside the same atomic step as the write.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	// Update loads the task, applies mutate and stores the result atomically.
	// A foreign key left dangling by mutate yields an IntegrityViolation.
	Update(ctx context.Context, id string, mutate func(t *domain.Task) error) (*domain.Task, error)
	// Delete removes the task and its comments.
	Delete(ctx context.Context, id string) error
}
