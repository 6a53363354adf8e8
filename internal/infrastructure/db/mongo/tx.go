package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"

	"github.com/taskboard/pm-api/internal/core/domain"
)

const (
	collectionUsers    = "users"
	collectionProjects = "projects"
	collectionTasks    = "tasks"
	collectionComments = "comments"
	collectionEvents   = "task_events"
)

// inTx runs fn inside a multi-document transaction. fn may be invoked more
// than once when the driver retries on a transient write conflict.
func inTx(ctx context.Context, db *mongo.Database, fn func(sc mongo.SessionContext) error, opts ...*options.TransactionOptions) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, opts...)
	return err
}

// snapshotTx makes every read in the transaction observe the same point in time.
func snapshotTx() *options.TransactionOptions {
	return options.Transaction().SetReadConcern(readconcern.Snapshot())
}

// bySeq keeps list results in insertion order.
func bySeq() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
}

// txRefs checks foreign keys inside a transaction. Each check bumps the
// referenced document's rev so a concurrent delete of that document
// conflicts with this transaction instead of interleaving with it.
type txRefs struct {
	db *mongo.Database
}

func (r txRefs) Exists(ctx context.Context, kind domain.EntityKind, id string) (bool, error) {
	res, err := r.db.Collection(collectionFor(kind)).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"rev": 1}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func collectionFor(kind domain.EntityKind) string {
	switch kind {
	case domain.KindUser:
		return collectionUsers
	case domain.KindProject:
		return collectionProjects
	case domain.KindTask:
		return collectionTasks
	default:
		return collectionComments
	}
}
