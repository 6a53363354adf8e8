package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type indexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// IndexHandler serves GET /api/ with a map of the resource collections.
type IndexHandler struct {
	version string
	prefix  string
}

// NewIndexHandler builds the index for an API mounted at prefix.
func NewIndexHandler(version, prefix string) *IndexHandler {
	return &IndexHandler{version: version, prefix: prefix}
}

// Index lists the API's resource collections.
//
// @Summary  API index
// @Tags     meta
// @Produce  json
// @Success  200  {object}  indexResponse
// @Router   / [get]
func (h *IndexHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, indexResponse{
		Name:    "Project Management API",
		Version: h.version,
		Endpoints: map[string]string{
			"users":    h.prefix + "/users",
			"projects": h.prefix + "/projects",
			"tasks":    h.prefix + "/tasks",
			"comments": h.prefix + "/comments",
			"metrics":  h.prefix + "/metrics/overview",
			"docs":     "/swagger/index.html",
		},
	})
}
