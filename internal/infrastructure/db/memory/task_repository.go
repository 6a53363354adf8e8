package memory

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

type TaskRepository struct{ s *Store }

func NewTaskRepository(s *Store) *TaskRepository { return &TaskRepository{s: s} }

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := domain.CheckReferences(ctx, refs{r.s}, t.References()...); err != nil {
		return err
	}
	r.s.tasks = append(r.s.tasks, cloneTask(t))
	return nil
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.taskIndex(id)
	if i < 0 {
		return nil, domain.NotFound(domain.KindTask, id)
	}
	return cloneTask(r.s.tasks[i]), nil
}

func (r *TaskRepository) List(_ context.Context, f ports.TaskFilter) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.tasksWhere(func(t *domain.Task) bool {
		switch {
		case f.ProjectID != "" && t.ProjectID != f.ProjectID:
			return false
		case f.AssignedTo != "" && (t.AssignedTo == nil || *t.AssignedTo != f.AssignedTo):
			return false
		case f.Status != "" && t.Status != f.Status:
			return false
		}
		return true
	}), nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, mutate func(t *domain.Task) error) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.taskIndex(id)
	if i < 0 {
		return nil, domain.NotFound(domain.KindTask, id)
	}
	clone := cloneTask(r.s.tasks[i])
	if err := mutate(clone); err != nil {
		return nil, err
	}
	if err := domain.CheckReferences(ctx, refs{r.s}, clone.References()...); err != nil {
		return nil, domain.UpdateViolation(err)
	}
	r.s.tasks[i] = cloneTask(clone)
	return clone, nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.removeTasksWhere(func(t *domain.Task) bool { return t.ID == id }) == 0 {
		return domain.NotFound(domain.KindTask, id)
	}
	return nil
}
