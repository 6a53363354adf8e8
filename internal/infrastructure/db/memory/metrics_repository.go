package memory

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

type MetricsRepository struct{ s *Store }

func NewMetricsRepository(s *Store) *MetricsRepository { return &MetricsRepository{s: s} }

func (r *MetricsRepository) OverviewSnapshot(_ context.Context) (*ports.OverviewSnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return &ports.OverviewSnapshot{
		Projects: len(r.s.projects),
		Users:    len(r.s.users),
		Tasks:    r.s.tasksWhere(func(*domain.Task) bool { return true }),
	}, nil
}

func (r *MetricsRepository) ProjectTasks(_ context.Context, projectID string) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.projectIndex(projectID) < 0 {
		return nil, domain.NotFound(domain.KindProject, projectID)
	}
	return r.s.tasksWhere(func(t *domain.Task) bool { return t.ProjectID == projectID }), nil
}
