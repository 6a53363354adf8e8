package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// CommentRepository persists task comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	// List returns comments for taskID, or every comment when taskID is empty.
	List(ctx context.Context, taskID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}
