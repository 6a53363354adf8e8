package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/pm-api/internal/core/domain"
)

type CommentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{db: db, col: db.Collection(collectionComments)}
}

type commentDoc struct {
	ID        string             `bson:"_id"`
	Seq       primitive.ObjectID `bson:"seq"`
	TaskID    string             `bson:"task_id"`
	UserID    string             `bson:"user_id"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		if err := domain.CheckReferences(sc, txRefs{r.db}, c.References()...); err != nil {
			return err
		}
		doc := commentDoc{
			ID:        c.ID,
			Seq:       primitive.NewObjectID(),
			TaskID:    c.TaskID,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
		if _, err := r.col.InsertOne(sc, doc); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		return nil
	})
}

func (r *CommentRepository) List(ctx context.Context, taskID string) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if taskID != "" {
		q["task_id"] = taskID
	}
	cur, err := r.col.Find(ctx, q, bySeq())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	out := make([]*domain.Comment, len(docs))
	for i, d := range docs {
		out[i] = &domain.Comment{
			ID:        d.ID,
			TaskID:    d.TaskID,
			UserID:    d.UserID,
			Text:      d.Text,
			CreatedAt: d.CreatedAt.UTC(),
		}
	}
	return out, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound(domain.KindComment, id)
	}
	return nil
}
