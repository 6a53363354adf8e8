package service

import (
	"context"
	"fmt"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

// MetricsService aggregates dashboard figures. Nothing is cached: every call
// reads the current entity set in one snapshot.
type MetricsService struct {
	repo ports.MetricsRepository
}

func NewMetricsService(repo ports.MetricsRepository) *MetricsService {
	return &MetricsService{repo: repo}
}

func (s *MetricsService) Overview(ctx context.Context) (*domain.Overview, error) {
	snap, err := s.repo.OverviewSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	o := domain.ComputeOverview(snap.Projects, snap.Users, snap.Tasks)
	return &o, nil
}

func (s *MetricsService) ProjectMetrics(ctx context.Context, projectID string) (*domain.ProjectMetrics, error) {
	tasks, err := s.repo.ProjectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	m := domain.ComputeProjectMetrics(tasks)
	return &m, nil
}
