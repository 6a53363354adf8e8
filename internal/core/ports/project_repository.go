package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// ProjectRepository persists projects. Create verifies the owner exists in
// the same atomic step as the insert.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id string, mutate func(p *domain.Project) error) (*domain.Project, error)
	// Delete removes the project together with its tasks and their comments.
	// Either everything is removed or nothing is. It returns the number of
	// tasks removed by the cascade.
	Delete(ctx context.Context, id string) (int, error)
}
