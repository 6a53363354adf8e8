package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// bindAndValidate decodes the request body into req and runs struct-tag
// validation. Malformed JSON is a 400; rule failures are validation errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

func (r updateUserRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Email: r.Email, AvatarColor: r.AvatarColor}
}

func (r updateProjectRequest) toPatch() domain.ProjectPatch {
	return domain.ProjectPatch{Name: r.Name, Description: r.Description, OwnerID: r.OwnerID}
}

func (r updateTaskRequest) toPatch() domain.TaskPatch {
	p := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
	}
	if r.Status != nil {
		s := domain.TaskStatus(*r.Status)
		p.Status = &s
	}
	if r.Priority != nil {
		pr := domain.TaskPriority(*r.Priority)
		p.Priority = &pr
	}
	return p
}
