// Package memory is an in-process implementation of the repository ports.
// A single lock guards every collection, so each repository call, including
// cascades, is atomic with respect to every other call.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// Store holds all collections in insertion order.
type Store struct {
	mu       sync.RWMutex
	users    []*domain.User
	projects []*domain.Project
	tasks    []*domain.Task
	comments []*domain.Comment
	events   []*domain.TaskEvent
}

func NewStore() *Store {
	return &Store{}
}

// refs resolves foreign keys against the store. Callers must hold s.mu.
type refs struct{ s *Store }

func (r refs) Exists(_ context.Context, kind domain.EntityKind, id string) (bool, error) {
	switch kind {
	case domain.KindUser:
		return r.s.userIndex(id) >= 0, nil
	case domain.KindProject:
		return r.s.projectIndex(id) >= 0, nil
	case domain.KindTask:
		return r.s.taskIndex(id) >= 0, nil
	case domain.KindComment:
		return r.s.commentIndex(id) >= 0, nil
	}
	return false, nil
}

func (s *Store) userIndex(id string) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) projectIndex(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) taskIndex(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) commentIndex(id string) int {
	for i, c := range s.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// cloneTask copies t including the targets of its pointer fields, so callers
// never share state with the stored task.
func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.AssignedTo != nil {
		id := *t.AssignedTo
		c.AssignedTo = &id
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

// tasksWhere returns copies of the matching tasks in insertion order.
// Callers must hold s.mu.
func (s *Store) tasksWhere(match func(*domain.Task) bool) []*domain.Task {
	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if match(t) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

func (s *Store) emailTaken(email, exceptID string) bool {
	for _, u := range s.users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// removeTasksWhere deletes matching tasks and their comments, returning how
// many tasks were removed. Callers must hold s.mu for writing.
func (s *Store) removeTasksWhere(match func(*domain.Task) bool) int {
	kept := s.tasks[:0]
	removed := make(map[string]struct{})
	for _, t := range s.tasks {
		if match(t) {
			removed[t.ID] = struct{}{}
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if len(removed) > 0 {
		s.removeCommentsWhere(func(c *domain.Comment) bool {
			_, ok := removed[c.TaskID]
			return ok
		})
	}
	return len(removed)
}

func (s *Store) removeCommentsWhere(match func(*domain.Comment) bool) {
	kept := s.comments[:0]
	for _, c := range s.comments {
		if !match(c) {
			kept = append(kept, c)
		}
	}
	s.comments = kept
}
