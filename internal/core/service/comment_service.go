package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

type CommentService struct {
	repo   ports.CommentRepository
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewCommentService(repo ports.CommentRepository, tasks ports.TaskRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{repo: repo, tasks: tasks, logger: logger}
}

func (s *CommentService) CreateComment(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	comment, err := domain.NewComment(uuid.NewString(), in.TaskID, in.UserID, in.Text, now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("comment_id", comment.ID).
		Str("task_id", comment.TaskID).
		Msg("comment created")
	return comment, nil
}

// ListComments returns the comments of taskID, or all comments when taskID
// is empty. Filtering by an unknown task is a NotFoundError.
func (s *CommentService) ListComments(ctx context.Context, taskID string) ([]*domain.Comment, error) {
	if taskID != "" {
		if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, taskID)
}

func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("comment_id", id).Msg("comment deleted")
	return nil
}
