package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

type TaskRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db, col: db.Collection(collectionTasks)}
}

type taskDoc struct {
	ID          string             `bson:"_id"`
	Seq         primitive.ObjectID `bson:"seq"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	ProjectID   string             `bson:"project_id"`
	AssignedTo  *string            `bson:"assigned_to"`
	Status      string             `bson:"status"`
	Priority    string             `bson:"priority"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	CompletedAt *time.Time         `bson:"completed_at"`
}

func (d taskDoc) toDomain() *domain.Task {
	t := &domain.Task{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		ProjectID:   d.ProjectID,
		AssignedTo:  d.AssignedTo,
		Status:      domain.TaskStatus(d.Status),
		Priority:    domain.TaskPriority(d.Priority),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.CompletedAt != nil {
		at := d.CompletedAt.UTC()
		t.CompletedAt = &at
	}
	return t
}

func fromTask(t *domain.Task, seq primitive.ObjectID) taskDoc {
	return taskDoc{
		ID:          t.ID,
		Seq:         seq,
		Title:       t.Title,
		Description: t.Description,
		ProjectID:   t.ProjectID,
		AssignedTo:  t.AssignedTo,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		if err := domain.CheckReferences(sc, txRefs{r.db}, t.References()...); err != nil {
			return err
		}
		if _, err := r.col.InsertOne(sc, fromTask(t, primitive.NewObjectID())); err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		return nil
	})
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d taskDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(domain.KindTask, id)
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return d.toDomain(), nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.ProjectID != "" {
		q["project_id"] = filter.ProjectID
	}
	if filter.AssignedTo != "" {
		q["assigned_to"] = filter.AssignedTo
	}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}

	return findTasks(ctx, r.col, q)
}

// findTasks runs q against col in insertion order.
func findTasks(ctx context.Context, col *mongo.Collection, q bson.M) ([]*domain.Task, error) {
	cur, err := col.Find(ctx, q, bySeq())
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	out := make([]*domain.Task, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// Update re-checks the task's references after mutate so a reassignment to a
// user being deleted concurrently cannot commit.
func (r *TaskRepository) Update(ctx context.Context, id string, mutate func(t *domain.Task) error) (*domain.Task, error) {
	var updated *domain.Task
	err := inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		var d taskDoc
		if err := r.col.FindOne(sc, bson.M{"_id": id}).Decode(&d); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.NotFound(domain.KindTask, id)
			}
			return fmt.Errorf("find task: %w", err)
		}

		t := d.toDomain()
		if err := mutate(t); err != nil {
			return err
		}
		if err := domain.CheckReferences(sc, txRefs{r.db}, t.References()...); err != nil {
			return domain.UpdateViolation(err)
		}
		if _, err := r.col.ReplaceOne(sc, bson.M{"_id": id}, fromTask(t, d.Seq)); err != nil {
			return fmt.Errorf("replace task: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		res, err := r.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.NotFound(domain.KindTask, id)
		}
		if _, err := r.db.Collection(collectionComments).DeleteMany(sc, bson.M{"task_id": id}); err != nil {
			return fmt.Errorf("delete task comments: %w", err)
		}
		return nil
	})
}
