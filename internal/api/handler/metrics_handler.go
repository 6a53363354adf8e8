package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/pm-api/internal/core/ports"
)

// MetricsHandler serves the dashboard aggregates.
type MetricsHandler struct {
	service ports.MetricsService
}

func NewMetricsHandler(service ports.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: service}
}

// Overview handles GET /metrics/overview.
//
// @Summary      Dashboard overview
// @Description  average_completion_time_days is null until at least one task is DONE.
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  domain.Overview
// @Router       /metrics/overview [get]
func (h *MetricsHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// Project handles GET /metrics/project/:id.
//
// @Summary      Per-project metrics
// @Tags         metrics
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.ProjectMetrics
// @Failure      404  {object}  ErrorResponse
// @Router       /metrics/project/{id} [get]
func (h *MetricsHandler) Project(c echo.Context) error {
	m, err := h.service.ProjectMetrics(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}
