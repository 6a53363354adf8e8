package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// OverviewSnapshot is the entity set the dashboard summary is computed from.
type OverviewSnapshot struct {
	Projects int
	Users    int
	Tasks    []*domain.Task
}

// MetricsRepository serves the metrics reads. Each call observes a single
// consistent view, so a concurrent cascade delete is either fully visible or
// not at all.
type MetricsRepository interface {
	OverviewSnapshot(ctx context.Context) (*OverviewSnapshot, error)
	// ProjectTasks returns the tasks of an existing project, or a
	// NotFoundError when the project does not exist.
	ProjectTasks(ctx context.Context, projectID string) ([]*domain.Task, error)
}
