package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

// WorkflowService applies task status transitions. Any status may follow any
// other; the only side effect is the completion timestamp, see
// domain.Task.TransitionTo.
type WorkflowService struct {
	repo      ports.TaskRepository
	publisher ports.ActivityPublisher
	logger    zerolog.Logger
}

func NewWorkflowService(repo ports.TaskRepository, publisher ports.ActivityPublisher, logger zerolog.Logger) *WorkflowService {
	return &WorkflowService{repo: repo, publisher: publisher, logger: logger}
}

// SetStatus moves a task to status. Repeating the current status is a no-op
// apart from updated_at, so DONE -> DONE keeps the original completed_at.
func (s *WorkflowService) SetStatus(ctx context.Context, taskID, status string) (*domain.Task, error) {
	next, err := domain.ParseTaskStatus("status", status)
	if err != nil {
		return nil, err
	}

	var prev domain.TaskStatus
	task, err := s.repo.Update(ctx, taskID, func(t *domain.Task) error {
		var terr error
		prev, terr = t.TransitionTo(next, now())
		return terr
	})
	if err != nil {
		return nil, err
	}

	if prev != next {
		recordTransition(s.publisher, task, prev)
		s.logger.Info().
			Str("task_id", taskID).
			Str("from", string(prev)).
			Str("to", string(next)).
			Msg("task status changed")
	}
	return task, nil
}
