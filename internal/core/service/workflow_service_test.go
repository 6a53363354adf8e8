package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

func TestSetStatus_CompletionTimestampRules(t *testing.T) {
	clock := useFakeClock(t, t0)
	f := newFixture()
	ctx := context.Background()
	_, projectID := seedProject(t, f)
	task, _ := f.tasks.CreateTask(ctx, ports.CreateTaskInput{Title: "T", Description: "D", ProjectID: projectID})

	// Moves among non-terminal states never set completed_at.
	for _, s := range []string{"IN_PROGRESS", "IN_REVIEW", "TODO"} {
		clock.Advance(time.Hour)
		got, err := f.workflow.SetStatus(ctx, task.ID, s)
		if err != nil {
			t.Fatalf("set %s: %v", s, err)
		}
		if got.CompletedAt != nil {
			t.Fatalf("%s must not set completed_at", s)
		}
	}

	clock.Advance(time.Hour)
	doneAt := clock.t
	got, err := f.workflow.SetStatus(ctx, task.ID, "DONE")
	if err != nil {
		t.Fatalf("set DONE: %v", err)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(doneAt) {
		t.Fatalf("expected completed_at %v, got %v", doneAt, got.CompletedAt)
	}

	// DONE -> DONE keeps the original timestamp and emits no event.
	events := len(f.pub.events)
	clock.Advance(time.Hour)
	got, _ = f.workflow.SetStatus(ctx, task.ID, "DONE")
	if !got.CompletedAt.Equal(doneAt) {
		t.Fatalf("repeat DONE changed completed_at to %v", got.CompletedAt)
	}
	if len(f.pub.events) != events {
		t.Errorf("repeat DONE should not publish, got %d new events", len(f.pub.events)-events)
	}

	// Leaving DONE clears it; any state is reachable from DONE.
	got, _ = f.workflow.SetStatus(ctx, task.ID, "TODO")
	if got.CompletedAt != nil {
		t.Fatalf("leaving DONE must clear completed_at, got %v", got.CompletedAt)
	}
}

func TestSetStatus_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, projectID := seedProject(t, f)
	task, _ := f.tasks.CreateTask(ctx, ports.CreateTaskInput{Title: "T", Description: "D", ProjectID: projectID})

	if _, err := f.workflow.SetStatus(ctx, task.ID, "BLOCKED"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.workflow.SetStatus(ctx, "missing", "DONE"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	got, _ := f.tasks.GetTask(ctx, task.ID)
	if got.Status != domain.StatusTodo {
		t.Errorf("failed transitions must not change status, got %s", got.Status)
	}
}
