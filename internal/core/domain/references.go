package domain

import (
	"context"
	"errors"
	"fmt"
)

// EntityKind names a persisted entity type.
type EntityKind string

const (
	KindUser    EntityKind = "user"
	KindProject EntityKind = "project"
	KindTask    EntityKind = "task"
	KindComment EntityKind = "comment"
)

// Label is the capitalised form used in client-facing messages.
func (k EntityKind) Label() string {
	switch k {
	case KindUser:
		return "User"
	case KindProject:
		return "Project"
	case KindTask:
		return "Task"
	case KindComment:
		return "Comment"
	default:
		return string(k)
	}
}

// Reference is a foreign key held by an entity.
type Reference struct {
	Field string
	Kind  EntityKind
	ID    string
}

// ReferenceChecker answers existence queries for foreign keys. Adapters
// implement it inside their own transaction so the check and the write that
// depends on it are atomic.
type ReferenceChecker interface {
	Exists(ctx context.Context, kind EntityKind, id string) (bool, error)
}

// CheckReferences is the single place foreign-key rules are enforced. Every
// reference must resolve; the first missing one yields a *NotFoundError.
func CheckReferences(ctx context.Context, rc ReferenceChecker, refs ...Reference) error {
	for _, ref := range refs {
		if ref.ID == "" {
			return Invalid(ref.Field, "must not be empty")
		}
		ok, err := rc.Exists(ctx, ref.Kind, ref.ID)
		if err != nil {
			return fmt.Errorf("check %s: %w", ref.Field, err)
		}
		if !ok {
			return &NotFoundError{Entity: ref.Kind, ID: ref.ID, Field: ref.Field}
		}
	}
	return nil
}

// UpdateViolation converts a missing foreign key found while updating an
// existing entity into an *IntegrityViolation. Other errors pass through.
func UpdateViolation(err error) error {
	var nf *NotFoundError
	if errors.As(err, &nf) && nf.Field != "" {
		return &IntegrityViolation{
			Field:  nf.Field,
			Reason: fmt.Sprintf("references missing %s %s", nf.Entity, nf.ID),
		}
	}
	return err
}
