package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/pm-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for projects.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}   domain.Project
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Create handles POST /projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      404   {object}  ErrorResponse  "owner does not exist"
// @Failure      422   {object}  ErrorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.service.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Get handles GET /projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Update handles PUT /projects/:id.
//
// @Summary      Update a project
// @Description  Changes name and description. owner_id may be echoed back but not changed.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.service.UpdateProject(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /projects/:id, removing its tasks as well.
//
// @Summary      Delete a project
// @Tags         projects
// @Param        id   path  string  true  "Project id"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
