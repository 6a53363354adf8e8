package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

func TestCreateProject_OwnerMustExist(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.projects.CreateProject(ctx, ports.CreateProjectInput{Name: "P", Description: "D", OwnerID: "ghost"})
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *domain.NotFoundError, got %v", err)
	}
	if nf.Field != "owner_id" || nf.ID != "ghost" {
		t.Errorf("unexpected not-found detail: %+v", nf)
	}

	owner, _ := f.users.CreateUser(ctx, ports.CreateUserInput{Name: "O", Email: "o@example.com"})
	p, err := f.projects.CreateProject(ctx, ports.CreateProjectInput{Name: "P", Description: "D", OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OwnerID != owner.ID {
		t.Errorf("expected owner %q, got %q", owner.ID, p.OwnerID)
	}
}

func TestCreateProject_RequiresDescription(t *testing.T) {
	f := newFixture()
	_, err := f.projects.CreateProject(context.Background(), ports.CreateProjectInput{Name: "P", OwnerID: "x"})
	if !errors.Is(err, domain.ErrValidation) || domain.ErrorField(err) != "description" {
		t.Fatalf("expected description validation error, got %v", err)
	}
}

func TestUpdateProject_TouchesUpdatedAtAndKeepsOwner(t *testing.T) {
	clock := useFakeClock(t, t0)
	f := newFixture()
	ctx := context.Background()
	owner, _ := f.users.CreateUser(ctx, ports.CreateUserInput{Name: "O", Email: "o@example.com"})
	p, _ := f.projects.CreateProject(ctx, ports.CreateProjectInput{Name: "P", Description: "D", OwnerID: owner.ID})

	clock.Advance(time.Hour)
	got, err := f.projects.UpdateProject(ctx, p.ID, domain.ProjectPatch{Name: strPtr("P2"), OwnerID: strPtr(owner.ID)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "P2" || got.Description != "D" {
		t.Errorf("unexpected project: %+v", got)
	}
	if !got.UpdatedAt.Equal(t0.Add(time.Hour)) || !got.CreatedAt.Equal(t0) {
		t.Errorf("unexpected timestamps: created %v updated %v", got.CreatedAt, got.UpdatedAt)
	}

	_, err = f.projects.UpdateProject(ctx, p.ID, domain.ProjectPatch{OwnerID: strPtr("other")})
	if !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("expected owner change to be refused, got %v", err)
	}
}

func TestDeleteProject_CascadesOnlyItsTasks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner, _ := f.users.CreateUser(ctx, ports.CreateUserInput{Name: "O", Email: "o@example.com"})
	doomed, _ := f.projects.CreateProject(ctx, ports.CreateProjectInput{Name: "A", Description: "D", OwnerID: owner.ID})
	kept, _ := f.projects.CreateProject(ctx, ports.CreateProjectInput{Name: "B", Description: "D", OwnerID: owner.ID})

	var doomedTasks []string
	for i := 0; i < 3; i++ {
		task, _ := f.tasks.CreateTask(ctx, ports.CreateTaskInput{Title: "T", Description: "D", ProjectID: doomed.ID})
		doomedTasks = append(doomedTasks, task.ID)
	}
	survivor, _ := f.tasks.CreateTask(ctx, ports.CreateTaskInput{Title: "T", Description: "D", ProjectID: kept.ID})

	if err := f.projects.DeleteProject(ctx, doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, id := range doomedTasks {
		if _, err := f.tasks.GetTask(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("task %s should be gone, got %v", id, err)
		}
	}
	if _, err := f.tasks.GetTask(ctx, survivor.ID); err != nil {
		t.Errorf("other project's task should survive: %v", err)
	}

	if err := f.projects.DeleteProject(ctx, doomed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}
