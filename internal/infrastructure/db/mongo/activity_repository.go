package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/pm-api/internal/core/domain"
)

// ActivityRepository stores task status events. Events are never removed, so
// the trail outlives the task it describes.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionEvents)}
}

type taskEventDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TaskID    string             `bson:"task_id"`
	ProjectID string             `bson:"project_id"`
	From      string             `bson:"from,omitempty"`
	To        string             `bson:"to"`
	At        time.Time          `bson:"at"`
}

func (r *ActivityRepository) Append(ctx context.Context, e *domain.TaskEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := taskEventDoc{
		ID:        primitive.NewObjectID(),
		TaskID:    e.TaskID,
		ProjectID: e.ProjectID,
		From:      string(e.From),
		To:        string(e.To),
		At:        e.At,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert task event: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.TaskEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// _id breaks ties between events stamped in the same millisecond.
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list task events: %w", err)
	}
	var docs []taskEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode task events: %w", err)
	}

	out := make([]*domain.TaskEvent, len(docs))
	for i, d := range docs {
		out[i] = &domain.TaskEvent{
			TaskID:    d.TaskID,
			ProjectID: d.ProjectID,
			From:      domain.TaskStatus(d.From),
			To:        domain.TaskStatus(d.To),
			At:        d.At.UTC(),
		}
	}
	return out, nil
}
