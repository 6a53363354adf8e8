package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// CreateUserInput carries the fields needed to register a user.
type CreateUserInput struct {
	Name        string
	Email       string
	AvatarColor string
}

// UserService defines use-case operations for users.
type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
