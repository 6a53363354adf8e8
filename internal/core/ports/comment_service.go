package ports

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

type CreateCommentInput struct {
	TaskID string
	UserID string
	Text   string
}

// CommentService defines use-case operations for task comments.
type CommentService interface {
	CreateComment(ctx context.Context, in CreateCommentInput) (*domain.Comment, error)
	ListComments(ctx context.Context, taskID string) ([]*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}
