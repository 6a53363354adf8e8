package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/service"
	"github.com/taskboard/pm-api/internal/infrastructure/db/memory"
)

// syncPublisher records activity inline so tests can read it back at once.
type syncPublisher struct {
	recorder *service.ActivityService
}

func (p syncPublisher) Publish(e domain.TaskEvent) {
	_ = p.recorder.Record(context.Background(), e)
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	log := zerolog.Nop()

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	projects := memory.NewProjectRepository(store)
	tasks := memory.NewTaskRepository(store)
	comments := memory.NewCommentRepository(store)
	activity := memory.NewActivityRepository(store)
	pub := syncPublisher{recorder: service.NewActivityService(activity, log)}

	reg := prometheus.NewRegistry()
	return NewRouter(Services{
		Users:    service.NewUserService(users, log),
		Projects: service.NewProjectService(projects, log),
		Tasks:    service.NewTaskService(tasks, activity, pub, log),
		Workflow: service.NewWorkflowService(tasks, pub, log),
		Comments: service.NewCommentService(comments, tasks, log),
		Metrics:  service.NewMetricsService(memory.NewMetricsRepository(store)),
	}, Options{Registerer: reg, Gatherer: reg}, log)
}

func call(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

type obj = map[string]any

func createUser(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	rec := call(t, e, http.MethodPost, "/api/users", obj{"name": "Ada", "email": email})
	expectCode(t, rec, http.StatusCreated)
	return decode[obj](t, rec)["id"].(string)
}

func createProject(t *testing.T, e *echo.Echo, ownerID string) string {
	t.Helper()
	rec := call(t, e, http.MethodPost, "/api/projects", obj{"name": "Apollo", "description": "Launch", "owner_id": ownerID})
	expectCode(t, rec, http.StatusCreated)
	return decode[obj](t, rec)["id"].(string)
}

func createTask(t *testing.T, e *echo.Echo, projectID string, extra obj) string {
	t.Helper()
	body := obj{"title": "Write docs", "description": "README", "project_id": projectID}
	for k, v := range extra {
		body[k] = v
	}
	rec := call(t, e, http.MethodPost, "/api/tasks", body)
	expectCode(t, rec, http.StatusCreated)
	return decode[obj](t, rec)["id"].(string)
}

// ---------------------------------------------------------------------------
// End-to-end scenarios
// ---------------------------------------------------------------------------

func TestE2E_CompleteTaskThenOverview(t *testing.T) {
	e := newTestServer(t)

	u1 := createUser(t, e, "u1@example.com")
	p1 := createProject(t, e, u1)

	rec := call(t, e, http.MethodPost, "/api/tasks", obj{
		"title": "T1", "description": "first", "project_id": p1,
	})
	expectCode(t, rec, http.StatusCreated)
	task := decode[obj](t, rec)
	if task["status"] != "TODO" || task["priority"] != "MEDIUM" || task["completed_at"] != nil {
		t.Fatalf("unexpected new task: %+v", task)
	}
	t1 := task["id"].(string)

	rec = call(t, e, http.MethodGet, "/api/metrics/overview", nil)
	expectCode(t, rec, http.StatusOK)
	if avg, present := decode[obj](t, rec)["average_completion_time_days"]; !present || avg != nil {
		t.Fatalf("expected null average before any completion, got %v (present=%v)", avg, present)
	}

	rec = call(t, e, http.MethodPatch, "/api/tasks/"+t1+"/status", obj{"status": "DONE"})
	expectCode(t, rec, http.StatusOK)
	if decode[obj](t, rec)["completed_at"] == nil {
		t.Fatal("expected completed_at after DONE")
	}

	rec = call(t, e, http.MethodGet, "/api/metrics/overview", nil)
	expectCode(t, rec, http.StatusOK)
	m := decode[obj](t, rec)
	if m["completed_tasks"] != float64(1) || m["total_tasks"] != float64(1) ||
		m["total_projects"] != float64(1) || m["total_users"] != float64(1) {
		t.Fatalf("unexpected overview: %+v", m)
	}
	avg, ok := m["average_completion_time_days"].(float64)
	if !ok || avg < 0 || avg > 0.01 {
		t.Fatalf("expected near-zero average, got %v", m["average_completion_time_days"])
	}
}

func TestE2E_ProjectDeleteCascadesTasks(t *testing.T) {
	e := newTestServer(t)

	owner := createUser(t, e, "owner@example.com")
	p2 := createProject(t, e, owner)
	a := createTask(t, e, p2, nil)
	b := createTask(t, e, p2, nil)

	rec := call(t, e, http.MethodPost, "/api/comments", obj{"task_id": a, "user_id": owner, "text": "ship it"})
	expectCode(t, rec, http.StatusCreated)

	expectCode(t, call(t, e, http.MethodDelete, "/api/projects/"+p2, nil), http.StatusNoContent)

	tasks := decode[[]obj](t, call(t, e, http.MethodGet, "/api/tasks", nil))
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %+v", tasks)
	}
	projects := decode[[]obj](t, call(t, e, http.MethodGet, "/api/projects", nil))
	if len(projects) != 0 {
		t.Fatalf("expected no projects, got %+v", projects)
	}
	for _, id := range []string{a, b} {
		expectCode(t, call(t, e, http.MethodGet, "/api/tasks/"+id, nil), http.StatusNotFound)
	}
	comments := decode[[]obj](t, call(t, e, http.MethodGet, "/api/comments", nil))
	if len(comments) != 0 {
		t.Fatalf("expected comments cascaded, got %+v", comments)
	}
}

func TestE2E_DoneTwiceKeepsCompletionTimestamp(t *testing.T) {
	e := newTestServer(t)
	p := createProject(t, e, createUser(t, e, "a@example.com"))
	id := createTask(t, e, p, nil)

	first := decode[obj](t, call(t, e, http.MethodPatch, "/api/tasks/"+id+"/status", obj{"status": "DONE"}))
	second := decode[obj](t, call(t, e, http.MethodPatch, "/api/tasks/"+id+"/status", obj{"status": "DONE"}))
	if first["completed_at"] == nil || first["completed_at"] != second["completed_at"] {
		t.Fatalf("completed_at changed: %v -> %v", first["completed_at"], second["completed_at"])
	}

	back := decode[obj](t, call(t, e, http.MethodPatch, "/api/tasks/"+id+"/status", obj{"status": "IN_PROGRESS"}))
	if back["completed_at"] != nil {
		t.Fatalf("leaving DONE must clear completed_at, got %v", back["completed_at"])
	}

	events := decode[[]obj](t, call(t, e, http.MethodGet, "/api/tasks/"+id+"/activity", nil))
	// created, TODO->DONE, DONE->IN_PROGRESS; the repeated DONE is not an event.
	if len(events) != 3 {
		t.Fatalf("expected 3 activity events, got %+v", events)
	}
	if events[2]["from"] != "DONE" || events[2]["to"] != "IN_PROGRESS" {
		t.Errorf("unexpected last event: %+v", events[2])
	}
}

func TestE2E_UpdateStatusThroughPut(t *testing.T) {
	e := newTestServer(t)
	p := createProject(t, e, createUser(t, e, "a@example.com"))
	id := createTask(t, e, p, nil)

	rec := call(t, e, http.MethodPut, "/api/tasks/"+id, obj{"status": "DONE", "priority": "HIGH"})
	expectCode(t, rec, http.StatusOK)
	task := decode[obj](t, rec)
	if task["completed_at"] == nil || task["priority"] != "HIGH" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

// ---------------------------------------------------------------------------
// Error envelope
// ---------------------------------------------------------------------------

func TestE2E_ErrorDetails(t *testing.T) {
	e := newTestServer(t)
	owner := createUser(t, e, "owner@example.com")
	p := createProject(t, e, owner)
	task := createTask(t, e, p, nil)

	cases := []struct {
		name      string
		method    string
		path      string
		body      any
		wantCode  int
		wantField string
	}{
		{"project with unknown owner", http.MethodPost, "/api/projects",
			obj{"name": "X", "description": "Y", "owner_id": "nobody"}, http.StatusNotFound, "owner_id"},
		{"task with unknown project", http.MethodPost, "/api/tasks",
			obj{"title": "X", "description": "Y", "project_id": "nope"}, http.StatusNotFound, "project_id"},
		{"task with unknown assignee", http.MethodPost, "/api/tasks",
			obj{"title": "X", "description": "Y", "project_id": p, "assigned_to": "ghost"}, http.StatusNotFound, "assigned_to"},
		{"blank title", http.MethodPost, "/api/tasks",
			obj{"title": "   ", "description": "Y", "project_id": p}, http.StatusUnprocessableEntity, "title"},
		{"invalid status", http.MethodPatch, "/api/tasks/" + task + "/status",
			obj{"status": "BLOCKED"}, http.StatusUnprocessableEntity, "status"},
		{"status on missing task", http.MethodPatch, "/api/tasks/missing/status",
			obj{"status": "DONE"}, http.StatusNotFound, ""},
		{"reassign to unknown user", http.MethodPut, "/api/tasks/" + task,
			obj{"assigned_to": "ghost"}, http.StatusConflict, "assigned_to"},
		{"change project owner", http.MethodPut, "/api/projects/" + p,
			obj{"owner_id": "someone-else"}, http.StatusConflict, "owner_id"},
		{"duplicate email", http.MethodPost, "/api/users",
			obj{"name": "Dup", "email": "owner@example.com"}, http.StatusConflict, "email"},
		{"invalid list filter", http.MethodGet, "/api/tasks?status=LATER", nil, http.StatusUnprocessableEntity, "status"},
		{"unknown route", http.MethodGet, "/api/nothing", nil, http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(t, e, tc.method, tc.path, tc.body)
			expectCode(t, rec, tc.wantCode)
			body := decode[obj](t, rec)
			if d, _ := body["detail"].(string); d == "" {
				t.Fatalf("expected detail message, got %+v", body)
			}
			if got, _ := body["field"].(string); got != tc.wantField {
				t.Errorf("expected field %q, got %q", tc.wantField, got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// User deletion policy
// ---------------------------------------------------------------------------

func TestE2E_UserDeletePolicy(t *testing.T) {
	e := newTestServer(t)
	owner := createUser(t, e, "owner@example.com")
	dev := createUser(t, e, "dev@example.com")
	p := createProject(t, e, owner)
	task := createTask(t, e, p, obj{"assigned_to": dev})

	rec := call(t, e, http.MethodDelete, "/api/users/"+owner, nil)
	expectCode(t, rec, http.StatusConflict)

	expectCode(t, call(t, e, http.MethodDelete, "/api/users/"+dev, nil), http.StatusNoContent)

	got := decode[obj](t, call(t, e, http.MethodGet, "/api/tasks/"+task, nil))
	if got["assigned_to"] != nil {
		t.Fatalf("expected task unassigned, got %v", got["assigned_to"])
	}
	expectCode(t, call(t, e, http.MethodGet, "/api/users/"+dev, nil), http.StatusNotFound)
}

// ---------------------------------------------------------------------------
// Misc routes
// ---------------------------------------------------------------------------

func TestRouter_IndexHealthAndMetrics(t *testing.T) {
	e := newTestServer(t)

	idx := decode[obj](t, call(t, e, http.MethodGet, "/api/", nil))
	if idx["name"] == nil || idx["endpoints"] == nil {
		t.Fatalf("unexpected index: %+v", idx)
	}
	expectCode(t, call(t, e, http.MethodGet, "/health", nil), http.StatusOK)
	expectCode(t, call(t, e, http.MethodGet, "/health/ready", nil), http.StatusOK)
	expectCode(t, call(t, e, http.MethodGet, "/metrics", nil), http.StatusOK)
}

func TestRouter_BasePath(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := memory.NewStore()
	log := zerolog.Nop()
	users := memory.NewUserRepository(store)
	e := NewRouter(Services{Users: service.NewUserService(users, log)},
		Options{BasePath: "/pm", Registerer: reg, Gatherer: reg}, log)

	expectCode(t, call(t, e, http.MethodGet, "/pm/api/users", nil), http.StatusOK)
	expectCode(t, call(t, e, http.MethodGet, "/api/users", nil), http.StatusNotFound)
}
