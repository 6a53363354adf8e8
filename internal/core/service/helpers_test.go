package service

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

// recordingPublisher captures published activity events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.TaskEvent
}

func (p *recordingPublisher) Publish(e domain.TaskEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// fakeClock replaces the service clock for the duration of a test.
type fakeClock struct {
	t time.Time
}

func useFakeClock(t *testing.T, start time.Time) *fakeClock {
	t.Helper()
	c := &fakeClock{t: start}
	prev := now
	now = func() time.Time { return c.t }
	t.Cleanup(func() { now = prev })
	return c
}

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
	workflow *WorkflowService
	comments *CommentService
	metrics  *MetricsService
	pub      *recordingPublisher
}

func newFixture() *fixture {
	log := zerolog.Nop()
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	projectRepo := memory.NewProjectRepository(store)
	taskRepo := memory.NewTaskRepository(store)
	pub := &recordingPublisher{}

	return &fixture{
		users:    NewUserService(userRepo, log),
		projects: NewProjectService(projectRepo, log),
		tasks:    NewTaskService(taskRepo, memory.NewActivityRepository(store), pub, log),
		workflow: NewWorkflowService(taskRepo, pub, log),
		comments: NewCommentService(memory.NewCommentRepository(store), taskRepo, log),
		metrics:  NewMetricsService(memory.NewMetricsRepository(store)),
		pub:      pub,
	}
}

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
