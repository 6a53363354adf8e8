package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// UserRepository persists users. Delete enforces the user-deletion policy:
// it fails with an IntegrityViolation while the user owns projects, and
// otherwise atomically unassigns the user's tasks and removes their comments.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update loads the user, applies mutate and stores the result in one
	// atomic step. A missing id yields a NotFoundError and mutate is not run.
	Update(ctx context.Context, id string, mutate func(u *domain.User) error) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
