package memory

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

type ActivityRepository struct{ s *Store }

func NewActivityRepository(s *Store) *ActivityRepository { return &ActivityRepository{s: s} }

func (r *ActivityRepository) Append(_ context.Context, e *domain.TaskEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	clone := *e
	r.s.events = append(r.s.events, &clone)
	return nil
}

func (r *ActivityRepository) ListByTask(_ context.Context, taskID string) ([]*domain.TaskEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.TaskEvent, 0)
	for _, e := range r.s.events {
		if e.TaskID == taskID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}
