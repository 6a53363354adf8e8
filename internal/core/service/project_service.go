package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
	"github.com/taskboard/pm-api/internal/metrics"
)

type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// CreateProject validates input and stores the project. A missing owner is
// reported as a NotFoundError on owner_id.
func (s *ProjectService) CreateProject(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	project, err := domain.NewProject(uuid.NewString(), in.Name, in.Description, in.OwnerID, now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("owner_id", project.OwnerID).
		Msg("project created")
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.List(ctx)
}

// UpdateProject changes name and/or description. The owner is fixed.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	project, err := s.repo.Update(ctx, id, func(p *domain.Project) error {
		return patch.Apply(p, now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", id).Msg("project updated")
	return project, nil
}

// DeleteProject removes the project and, atomically, every task in it.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	metrics.CascadeDeletedTasksTotal.Add(float64(removed))
	s.logger.Info().
		Str("project_id", id).
		Int("tasks_removed", removed).
		Msg("project deleted")
	return nil
}
