package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

const collectionLawyers = "lawyers"

type LawyerRepository struct {
	col *mongo.Collection
}

func NewLawyerRepository(db *mongo.Database) *LawyerRepository {
	return &LawyerRepository{col: db.Collection(collectionLawyers)}
}

// Create inserts a new profile. The _id is the owning identity, so the
// at-most-one-profile-per-identity rule is the primary key itself.
func (r *LawyerRepository) Create(ctx context.Context, p *domain.LawyerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("create lawyer profile: %w", err)
	}
	return nil
}

func (r *LawyerRepository) FindByID(ctx context.Context, lawyerID string) (*domain.LawyerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.LawyerProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": lawyerID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLawyerNotFound
		}
		return nil, fmt.Errorf("find lawyer profile: %w", err)
	}
	return &p, nil
}

// FindByIDs returns the profiles that still exist; deleted lawyers are
// silently absent, which is what the dashboards rely on.
func (r *LawyerRepository) FindByIDs(ctx context.Context, lawyerIDs []string) ([]*domain.LawyerProfile, error) {
	if len(lawyerIDs) == 0 {
		return []*domain.LawyerProfile{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"_id": bson.M{"$in": lawyerIDs}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find lawyer profiles: %w", err)
	}
	defer cur.Close(ctx)

	var profiles []*domain.LawyerProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("find lawyer profiles: %w", err)
	}
	return profiles, nil
}

// UpdateFields replaces the mutable fields only. Tier, reviews and the
// consultation counter are never written through this path.
func (r *LawyerRepository) UpdateFields(ctx context.Context, p *domain.LawyerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":               p.Name,
		"bio":                p.Bio,
		"fee":                p.Fee,
		"credentials":        p.Credentials,
		"areas_of_expertise": p.AreasOfExpertise,
		"languages":          p.Languages,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return fmt.Errorf("update lawyer profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLawyerNotFound
	}
	return nil
}

func (r *LawyerRepository) List(ctx context.Context) ([]*domain.LawyerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list lawyer profiles: %w", err)
	}
	defer cur.Close(ctx)

	var profiles []*domain.LawyerProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("list lawyer profiles: %w", err)
	}
	return profiles, nil
}

func (r *LawyerRepository) AppendReview(ctx context.Context, lawyerID string, review domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": lawyerID},
		bson.M{"$push": bson.M{"reviews": review}},
	)
	if err != nil {
		return fmt.Errorf("append review: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLawyerNotFound
	}
	return nil
}

func (r *LawyerRepository) IncrementConsultations(ctx context.Context, lawyerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": lawyerID},
		bson.M{"$inc": bson.M{"consultations_offered": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment consultations: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLawyerNotFound
	}
	return nil
}

func (r *LawyerRepository) Delete(ctx context.Context, lawyerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": lawyerID})
	if err != nil {
		return fmt.Errorf("delete lawyer profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLawyerNotFound
	}
	return nil
}
