package memory

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

type ProjectRepository struct{ s *Store }

func NewProjectRepository(s *Store) *ProjectRepository { return &ProjectRepository{s: s} }

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := domain.CheckReferences(ctx, refs{r.s}, p.References()...); err != nil {
		return err
	}
	clone := *p
	r.s.projects = append(r.s.projects, &clone)
	return nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.projectIndex(id)
	if i < 0 {
		return nil, domain.NotFound(domain.KindProject, id)
	}
	clone := *r.s.projects[i]
	return &clone, nil
}

func (r *ProjectRepository) List(_ context.Context) ([]*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Project, len(r.s.projects))
	for i, p := range r.s.projects {
		clone := *p
		out[i] = &clone
	}
	return out, nil
}

func (r *ProjectRepository) Update(_ context.Context, id string, mutate func(p *domain.Project) error) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.projectIndex(id)
	if i < 0 {
		return nil, domain.NotFound(domain.KindProject, id)
	}
	clone := *r.s.projects[i]
	if err := mutate(&clone); err != nil {
		return nil, err
	}
	r.s.projects[i] = &clone
	out := clone
	return &out, nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.projectIndex(id)
	if i < 0 {
		return 0, domain.NotFound(domain.KindProject, id)
	}
	r.s.projects = append(r.s.projects[:i], r.s.projects[i+1:]...)
	return r.s.removeTasksWhere(func(t *domain.Task) bool { return t.ProjectID == id }), nil
}
