package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) FindByIdentity(ctx context.Context, identity string) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.UserProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": identity}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &p, nil
}

// SaveName upserts the display name. The update never touches
// the role fields: display-name saves must not be a role escalation path.
func (r *UserRepository) SaveName(ctx context.Context, identity, name string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{"name": name, "updated_at": now},
		"$setOnInsert": bson.M{
			"created_at": now,
			"admin_role": domain.AdminRoleUser,
		},
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": identity}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save user name: %w", err)
	}
	return nil
}

// SetRoleOnce writes the onboarding role only when it is currently absent.
// The filter matches a missing or empty role; when the document exists with a
// role already set, the upsert collides on _id and surfaces as a duplicate
// key error, which is exactly the one-shot violation.
func (r *UserRepository) SetRoleOnce(ctx context.Context, identity string, role domain.UserRole) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{
		"_id":  identity,
		"role": bson.M{"$in": bson.A{nil, ""}},
	}
	update := bson.M{
		"$set": bson.M{"role": role, "updated_at": now},
		"$setOnInsert": bson.M{
			"created_at": now,
			"admin_role": domain.AdminRoleUser,
		},
	}

	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyOnboarded
		}
		return fmt.Errorf("set user role: %w", err)
	}
	return nil
}

func (r *UserRepository) SetAdminRole(ctx context.Context, identity string, role domain.AdminRole) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{"admin_role": role, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": identity}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set admin role: %w", err)
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.UserProfile
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
