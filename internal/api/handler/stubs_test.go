package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

// newContext builds an echo context for a JSON request. Handler errors are
// returned to the caller instead of being rendered.
func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubUserService struct {
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
	updateFn func(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubTaskService struct {
	createFn   func(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error)
	listFn     func(ctx context.Context, in ports.ListTasksInput) ([]*domain.Task, error)
	updateFn   func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	activityFn func(ctx context.Context, id string) ([]*domain.TaskEvent, error)
}

func (s *stubTaskService) CreateTask(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, in)
}

func (s *stubTaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return nil, domain.NotFound(domain.KindTask, id)
}

func (s *stubTaskService) ListTasks(ctx context.Context, in ports.ListTasksInput) ([]*domain.Task, error) {
	return s.listFn(ctx, in)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id string) error {
	return nil
}

func (s *stubTaskService) TaskActivity(ctx context.Context, id string) ([]*domain.TaskEvent, error) {
	return s.activityFn(ctx, id)
}

type stubWorkflowService struct {
	setStatusFn func(ctx context.Context, taskID, status string) (*domain.Task, error)
}

func (s *stubWorkflowService) SetStatus(ctx context.Context, taskID, status string) (*domain.Task, error) {
	return s.setStatusFn(ctx, taskID, status)
}
