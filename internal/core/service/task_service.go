package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
	"github.com/taskboard/pm-api/internal/metrics"
)

type TaskService struct {
	repo      ports.TaskRepository
	activity  ports.ActivityRepository
	publisher ports.ActivityPublisher
	logger    zerolog.Logger
}

func NewTaskService(
	repo ports.TaskRepository,
	activity ports.ActivityRepository,
	publisher ports.ActivityPublisher,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		repo:      repo,
		activity:  activity,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateTask stores a new task in the TODO state. The project must exist;
// an assignee, when given, must exist too.
func (s *TaskService) CreateTask(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	priority, err := domain.ParseTaskPriority("priority", in.Priority)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(uuid.NewString(), in.Title, in.Description, in.ProjectID, in.AssignedTo, priority, now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	s.publisher.Publish(domain.TaskEvent{
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		To:        task.Status,
		At:        task.CreatedAt,
	})

	s.logger.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Msg("task created")
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// ListTasks returns tasks in insertion order, optionally filtered.
func (s *TaskService) ListTasks(ctx context.Context, in ports.ListTasksInput) ([]*domain.Task, error) {
	filter := ports.TaskFilter{ProjectID: in.ProjectID, AssignedTo: in.AssignedTo}
	if in.Status != "" {
		status, err := domain.ParseTaskStatus("status", in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	return s.repo.List(ctx, filter)
}

// UpdateTask applies a partial update. A status in the patch follows the
// same completion-timestamp rules as SetStatus.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var (
		prev    domain.TaskStatus
		changed bool
	)
	task, err := s.repo.Update(ctx, id, func(t *domain.Task) error {
		prev, changed = patch.Apply(t, now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		recordTransition(s.publisher, task, prev)
	}

	s.logger.Info().Str("task_id", id).Msg("task updated")
	return task, nil
}

// DeleteTask removes the task and its comments.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

// TaskActivity lists the activity trail of an existing task, oldest first.
func (s *TaskService) TaskActivity(ctx context.Context, id string) ([]*domain.TaskEvent, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.activity.ListByTask(ctx, id)
}

func recordTransition(pub ports.ActivityPublisher, t *domain.Task, prev domain.TaskStatus) {
	metrics.TaskTransitionsTotal.WithLabelValues(string(prev), string(t.Status)).Inc()
	pub.Publish(domain.TaskEvent{
		TaskID:    t.ID,
		ProjectID: t.ProjectID,
		From:      prev,
		To:        t.Status,
		At:        t.UpdatedAt,
	})
}
