package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// MetricsService computes dashboard aggregates fresh on every call.
type MetricsService interface {
	Overview(ctx context.Context) (*domain.Overview, error)
	ProjectMetrics(ctx context.Context, projectID string) (*domain.ProjectMetrics, error)
}
