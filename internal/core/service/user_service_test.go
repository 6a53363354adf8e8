package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

func TestCreateUser_DefaultsAvatarColor(t *testing.T) {
	useFakeClock(t, t0)
	f := newFixture()

	u, err := f.users.CreateUser(context.Background(), ports.CreateUserInput{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" {
		t.Error("expected generated id")
	}
	if u.AvatarColor != domain.DefaultAvatarColor {
		t.Errorf("expected default avatar color, got %q", u.AvatarColor)
	}
	if !u.CreatedAt.Equal(t0) {
		t.Errorf("expected created_at %v, got %v", t0, u.CreatedAt)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	f := newFixture()
	cases := []struct {
		name  string
		in    ports.CreateUserInput
		field string
	}{
		{"blank name", ports.CreateUserInput{Name: " ", Email: "a@example.com"}, "name"},
		{"missing email", ports.CreateUserInput{Name: "Ada"}, "email"},
		{"malformed email", ports.CreateUserInput{Name: "Ada", Email: "not-an-email"}, "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.users.CreateUser(context.Background(), tc.in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if domain.ErrorField(err) != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, domain.ErrorField(err))
			}
		})
	}
}

func TestUpdateUser_PartialAndUniqueEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.users.CreateUser(ctx, ports.CreateUserInput{Name: "Ada", Email: "ada@example.com"})
	_, _ = f.users.CreateUser(ctx, ports.CreateUserInput{Name: "Bob", Email: "bob@example.com"})

	got, err := f.users.UpdateUser(ctx, a.ID, domain.UserPatch{Name: strPtr("Ada L.")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ada L." || got.Email != "ada@example.com" {
		t.Errorf("unexpected user after partial update: %+v", got)
	}

	_, err = f.users.UpdateUser(ctx, a.ID, domain.UserPatch{Email: strPtr("bob@example.com")})
	if !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("expected integrity violation for taken email, got %v", err)
	}

	_, err = f.users.UpdateUser(ctx, "missing", domain.UserPatch{Name: strPtr("X")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteUser_Policy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner, _ := f.users.CreateUser(ctx, ports.CreateUserInput{Name: "Owner", Email: "owner@example.com"})
	dev, _ := f.users.CreateUser(ctx, ports.CreateUserInput{Name: "Dev", Email: "dev@example.com"})
	p, err := f.projects.CreateProject(ctx, ports.CreateProjectInput{Name: "P", Description: "D", OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	task, err := f.tasks.CreateTask(ctx, ports.CreateTaskInput{Title: "T", Description: "D", ProjectID: p.ID, AssignedTo: &dev.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := f.comments.CreateComment(ctx, ports.CreateCommentInput{TaskID: task.ID, UserID: dev.ID, Text: "on it"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := f.users.DeleteUser(ctx, owner.ID); !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("expected owner delete to be blocked, got %v", err)
	}

	if err := f.users.DeleteUser(ctx, dev.ID); err != nil {
		t.Fatalf("delete dev: %v", err)
	}
	got, _ := f.tasks.GetTask(ctx, task.ID)
	if got.AssignedTo != nil {
		t.Errorf("expected task unassigned, got %q", *got.AssignedTo)
	}
	comments, _ := f.comments.ListComments(ctx, task.ID)
	if len(comments) != 0 {
		t.Errorf("expected dev's comments removed, got %d", len(comments))
	}
}
