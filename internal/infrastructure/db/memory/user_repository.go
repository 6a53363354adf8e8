package memory

import (
	"context"
	"fmt"

	"github.com/taskboard/pm-api/internal/core/domain"
)

type UserRepository struct{ s *Store }

func NewUserRepository(s *Store) *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.emailTaken(u.Email, "") {
		return errEmailTaken
	}
	clone := *u
	r.s.users = append(r.s.users, &clone)
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.userIndex(id)
	if i < 0 {
		return nil, domain.NotFound(domain.KindUser, id)
	}
	clone := *r.s.users[i]
	return &clone, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, len(r.s.users))
	for i, u := range r.s.users {
		clone := *u
		out[i] = &clone
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, id string, mutate func(u *domain.User) error) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.userIndex(id)
	if i < 0 {
		return nil, domain.NotFound(domain.KindUser, id)
	}
	clone := *r.s.users[i]
	if err := mutate(&clone); err != nil {
		return nil, err
	}
	if r.s.emailTaken(clone.Email, id) {
		return nil, errEmailTaken
	}
	r.s.users[i] = &clone
	out := clone
	return &out, nil
}

// Delete refuses while the user owns projects, otherwise unassigns their
// tasks and removes their comments along with the user.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.userIndex(id)
	if i < 0 {
		return domain.NotFound(domain.KindUser, id)
	}

	owned := 0
	for _, p := range r.s.projects {
		if p.OwnerID == id {
			owned++
		}
	}
	if owned > 0 {
		return ownsProjects(owned)
	}

	for j, t := range r.s.tasks {
		if t.AssignedTo != nil && *t.AssignedTo == id {
			clone := cloneTask(t)
			clone.AssignedTo = nil
			r.s.tasks[j] = clone
		}
	}
	r.s.removeCommentsWhere(func(c *domain.Comment) bool { return c.UserID == id })
	r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
	return nil
}

var errEmailTaken = &domain.IntegrityViolation{Field: "email", Reason: "is already in use"}

func ownsProjects(n int) error {
	return &domain.IntegrityViolation{
		Field:  "id",
		Reason: fmt.Sprintf("user owns %d project(s); delete them first", n),
	}
}
