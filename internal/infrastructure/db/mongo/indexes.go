package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq := mongo.IndexModel{Keys: bson.D{{Key: "seq", Value: 1}}}
	specs := map[string][]mongo.IndexModel{
		collectionUsers: {
			seq,
			// Strength 2 makes uniqueness case-insensitive.
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().
				SetUnique(true).
				SetCollation(&options.Collation{Locale: "en", Strength: 2})},
		},
		collectionProjects: {
			seq,
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		},
		collectionTasks: {
			seq,
			{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		},
		collectionComments: {
			seq,
			{Keys: bson.D{{Key: "task_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		collectionEvents: {
			{Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "at", Value: 1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}
