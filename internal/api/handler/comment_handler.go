package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/pm-api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// List handles GET /comments.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Param        task_id  query     string  false  "Only comments on this task"
// @Success      200      {array}   domain.Comment
// @Failure      404      {object}  ErrorResponse
// @Router       /comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.service.ListComments(c.Request().Context(), c.QueryParam("task_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Create handles POST /comments.
//
// @Summary      Comment on a task
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req createCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.CreateComment(c.Request().Context(), ports.CreateCommentInput{
		TaskID: req.TaskID,
		UserID: req.UserID,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// Delete handles DELETE /comments/:id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Param        id   path  string  true  "Comment id"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteComment(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
