package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// CreateProjectInput carries the fields needed to create a project.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     string
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
}
