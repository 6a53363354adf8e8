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

type UserRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID          string             `bson:"_id"`
	Seq         primitive.ObjectID `bson:"seq"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	AvatarColor string             `bson:"avatar_color"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		AvatarColor: d.AvatarColor,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func fromUser(u *domain.User, seq primitive.ObjectID) userDoc {
	return userDoc{
		ID:          u.ID,
		Seq:         seq,
		Name:        u.Name,
		Email:       u.Email,
		AvatarColor: u.AvatarColor,
		CreatedAt:   u.CreatedAt,
	}
}

var errEmailTaken = &domain.IntegrityViolation{Field: "email", Reason: "is already in use"}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, fromUser(u, primitive.NewObjectID())); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(domain.KindUser, id)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, bySeq())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]*domain.User, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, mutate func(u *domain.User) error) (*domain.User, error) {
	var updated *domain.User
	err := inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		var d userDoc
		if err := r.col.FindOne(sc, bson.M{"_id": id}).Decode(&d); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.NotFound(domain.KindUser, id)
			}
			return fmt.Errorf("find user: %w", err)
		}

		u := d.toDomain()
		if err := mutate(u); err != nil {
			return err
		}
		if _, err := r.col.ReplaceOne(sc, bson.M{"_id": id}, fromUser(u, d.Seq)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return errEmailTaken
			}
			return fmt.Errorf("replace user: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete refuses while the user owns projects. Otherwise it unassigns the
// user's tasks, removes their comments and the user in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.db, func(sc mongo.SessionContext) error {
		owned, err := r.db.Collection(collectionProjects).CountDocuments(sc, bson.M{"owner_id": id})
		if err != nil {
			return fmt.Errorf("count owned projects: %w", err)
		}
		if owned > 0 {
			return &domain.IntegrityViolation{
				Field:  "id",
				Reason: fmt.Sprintf("user owns %d project(s); delete them first", owned),
			}
		}

		if _, err := r.db.Collection(collectionTasks).UpdateMany(sc,
			bson.M{"assigned_to": id},
			bson.M{"$set": bson.M{"assigned_to": nil}},
		); err != nil {
			return fmt.Errorf("unassign tasks: %w", err)
		}
		if _, err := r.db.Collection(collectionComments).DeleteMany(sc, bson.M{"user_id": id}); err != nil {
			return fmt.Errorf("delete user comments: %w", err)
		}

		res, err := r.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.NotFound(domain.KindUser, id)
		}
		return nil
	})
}
