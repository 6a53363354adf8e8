package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
	"github.com/taskboard/pm-api/internal/metrics"
)

// ActivityService persists task activity events handed over by the
// dispatcher workers.
type ActivityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Record appends one event to the trail.
func (s *ActivityService) Record(ctx context.Context, e domain.TaskEvent) error {
	if err := s.repo.Append(ctx, &e); err != nil {
		metrics.ActivityErrorsTotal.Inc()
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("task_id", e.TaskID).
		Str("from", string(e.From)).
		Str("to", string(e.To)).
		Msg("activity recorded")
	return nil
}
