package memory

import (
	"context"

	"github.com/taskboard/pm-api/internal/core/domain"
)

type CommentRepository struct{ s *Store }

func NewCommentRepository(s *Store) *CommentRepository { return &CommentRepository{s: s} }

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := domain.CheckReferences(ctx, refs{r.s}, c.References()...); err != nil {
		return err
	}
	clone := *c
	r.s.comments = append(r.s.comments, &clone)
	return nil
}

func (r *CommentRepository) List(_ context.Context, taskID string) ([]*domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Comment, 0)
	for _, c := range r.s.comments {
		if taskID != "" && c.TaskID != taskID {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.commentIndex(id)
	if i < 0 {
		return domain.NotFound(domain.KindComment, id)
	}
	r.s.comments = append(r.s.comments[:i], r.s.comments[i+1:]...)
	return nil
}
