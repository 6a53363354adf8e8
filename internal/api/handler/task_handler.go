package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/pm-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for tasks. Status transitions go through
// the workflow service.
type TaskHandler struct {
	service  ports.TaskService
	workflow ports.WorkflowService
}

func NewTaskHandler(service ports.TaskService, workflow ports.WorkflowService) *TaskHandler {
	return &TaskHandler{service: service, workflow: workflow}
}

// List handles GET /tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        project_id   query     string  false  "Only tasks of this project"
// @Param        assigned_to  query     string  false  "Only tasks assigned to this user"
// @Param        status       query     string  false  "Only tasks in this status"  Enums(TODO, IN_PROGRESS, IN_REVIEW, DONE)
// @Success      200          {array}   domain.Task
// @Failure      422          {object}  ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.ListTasks(c.Request().Context(), ports.ListTasksInput{
		ProjectID:  c.QueryParam("project_id"),
		AssignedTo: c.QueryParam("assigned_to"),
		Status:     c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /tasks. New tasks start in TODO.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      404   {object}  ErrorResponse  "project or assignee does not exist"
// @Failure      422   {object}  ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Get handles GET /tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PUT /tasks/:id.
//
// @Summary      Update a task
// @Description  Partial update. "assigned_to": "" unassigns the task. A status is applied with the same rules as PATCH /tasks/{id}/status.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse  "assignee does not exist"
// @Failure      422   {object}  ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateStatus handles PATCH /tasks/:id/status.
//
// @Summary      Transition a task's status
// @Description  Any status may follow any other. Entering DONE stamps completed_at; leaving DONE clears it.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Task id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Task
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.workflow.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Param        id   path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Activity handles GET /tasks/:id/activity.
//
// @Summary      Task activity trail
// @Description  Creation and status transitions, oldest first. Events are recorded asynchronously.
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {array}   domain.TaskEvent
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id}/activity [get]
func (h *TaskHandler) Activity(c echo.Context) error {
	events, err := h.service.TaskActivity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
