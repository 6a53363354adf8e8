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
)

type ProjectRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{db: db, col: db.Collection(collectionProjects)}
}

type projectDoc struct {
	ID          string             `bson:"_id"`
	Seq         primitive.ObjectID `bson:"seq"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func fromProject(p *domain.Project, seq primitive.ObjectID) projectDoc {
	return projectDoc{
		ID:          p.ID,
		Seq:         seq,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		if err := domain.CheckReferences(sc, txRefs{r.db}, p.References()...); err != nil {
			return err
		}
		if _, err := r.col.InsertOne(sc, fromProject(p, primitive.NewObjectID())); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		return nil
	})
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(domain.KindProject, id)
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return d.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, bySeq())
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	out := make([]*domain.Project, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, mutate func(p *domain.Project) error) (*domain.Project, error) {
	var updated *domain.Project
	err := inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		var d projectDoc
		if err := r.col.FindOne(sc, bson.M{"_id": id}).Decode(&d); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.NotFound(domain.KindProject, id)
			}
			return fmt.Errorf("find project: %w", err)
		}

		p := d.toDomain()
		if err := mutate(p); err != nil {
			return err
		}
		if _, err := r.col.ReplaceOne(sc, bson.M{"_id": id}, fromProject(p, d.Seq)); err != nil {
			return fmt.Errorf("replace project: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the project, its tasks and their comments in one transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (int, error) {
	var removed int
	err := inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		res, err := r.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.NotFound(domain.KindProject, id)
		}

		tasks := r.db.Collection(collectionTasks)
		taskIDs, err := tasks.Distinct(sc, "_id", bson.M{"project_id": id})
		if err != nil {
			return fmt.Errorf("collect project tasks: %w", err)
		}
		if len(taskIDs) > 0 {
			if _, err := r.db.Collection(collectionComments).DeleteMany(sc,
				bson.M{"task_id": bson.M{"$in": taskIDs}},
			); err != nil {
				return fmt.Errorf("delete task comments: %w", err)
			}
		}

		del, err := tasks.DeleteMany(sc, bson.M{"project_id": id})
		if err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
		removed = int(del.DeletedCount)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
