package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

func TestComments_Lifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ownerID, projectID := seedProject(t, f)
	task, _ := f.tasks.CreateTask(ctx, ports.CreateTaskInput{Title: "T", Description: "D", ProjectID: projectID})

	c, err := f.comments.CreateComment(ctx, ports.CreateCommentInput{TaskID: task.ID, UserID: ownerID, Text: "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := f.comments.ListComments(ctx, task.ID)
	if err != nil || len(list) != 1 || list[0].ID != c.ID {
		t.Fatalf("unexpected list: %+v, %v", list, err)
	}

	if err := f.comments.DeleteComment(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.comments.DeleteComment(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestComments_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ownerID, projectID := seedProject(t, f)
	task, _ := f.tasks.CreateTask(ctx, ports.CreateTaskInput{Title: "T", Description: "D", ProjectID: projectID})

	if _, err := f.comments.CreateComment(ctx, ports.CreateCommentInput{TaskID: task.ID, UserID: ownerID, Text: " "}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for blank text, got %v", err)
	}
	if _, err := f.comments.CreateComment(ctx, ports.CreateCommentInput{TaskID: "nope", UserID: ownerID, Text: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found for unknown task, got %v", err)
	}
	if _, err := f.comments.ListComments(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found when filtering by unknown task, got %v", err)
	}
}
