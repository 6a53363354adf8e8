package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// ActivityRepository stores the append-only task activity trail.
type ActivityRepository interface {
	Append(ctx context.Context, e *domain.TaskEvent) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.TaskEvent, error)
}

// ActivityPublisher hands an event to the asynchronous recorder.
type ActivityPublisher interface {
	Publish(e domain.TaskEvent)
}
