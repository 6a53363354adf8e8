package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/pm-api/internal/core/domain"
	"github.com/taskboard/pm-api/internal/core/ports"
)

// MetricsRepository reads everything a metrics response needs inside one
// snapshot transaction.
type MetricsRepository struct {
	db *mongo.Database
}

func NewMetricsRepository(db *mongo.Database) *MetricsRepository {
	return &MetricsRepository{db: db}
}

func (r *MetricsRepository) OverviewSnapshot(ctx context.Context) (*ports.OverviewSnapshot, error) {
	var snap ports.OverviewSnapshot
	err := inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		projects, err := r.db.Collection(collectionProjects).CountDocuments(sc, bson.M{})
		if err != nil {
			return fmt.Errorf("count projects: %w", err)
		}
		users, err := r.db.Collection(collectionUsers).CountDocuments(sc, bson.M{})
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		tasks, err := findTasks(sc, r.db.Collection(collectionTasks), bson.M{})
		if err != nil {
			return err
		}
		snap = ports.OverviewSnapshot{Projects: int(projects), Users: int(users), Tasks: tasks}
		return nil
	}, snapshotTx())
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *MetricsRepository) ProjectTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		err := r.db.Collection(collectionProjects).FindOne(sc, bson.M{"_id": projectID}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.NotFound(domain.KindProject, projectID)
		}
		if err != nil {
			return fmt.Errorf("find project: %w", err)
		}
		tasks, err = findTasks(sc, r.db.Collection(collectionTasks), bson.M{"project_id": projectID})
		return err
	}, snapshotTx())
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
