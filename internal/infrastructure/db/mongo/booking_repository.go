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

const (
	collectionBookings = "bookings"
	collectionCounters = "counters"
	bookingCounterID   = "booking_id"
)

type BookingRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{
		col:      db.Collection(collectionBookings),
		counters: db.Collection(collectionCounters),
	}
}

// NextID allocates the next booking id from a single counter document using
// an atomic $inc. IDs are strictly increasing and survive deletes; nothing
// ever decrements the counter.
func (r *BookingRepository) NextID(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": bookingCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next booking id: %w", err)
	}
	return counter.Seq, nil
}

// Create inserts a new booking. The partial unique index on (lawyer_id, slot)
// over non-cancelled bookings is the storage-level backstop for slot
// exclusivity; a collision here means two writers raced past the service
// guards and exactly one of them loses.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlotConflict
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Booking
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) ExistsActiveSlot(ctx context.Context, lawyerID string, slot int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"lawyer_id": lawyerID,
		"slot":      slot,
		"status":    bson.M{"$ne": domain.StatusCancelled},
	})
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return n > 0, nil
}

// UpdateStatus is conditional on the expected current status, so a booking
// that moved concurrently is left untouched and the caller gets
// ErrInvalidTransition instead of a double-applied transition.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *BookingRepository) HasCompleted(ctx context.Context, clientID, lawyerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"client_id": clientID,
		"lawyer_id": lawyerID,
		"status":    domain.StatusCompleted,
	})
	if err != nil {
		return false, fmt.Errorf("check completed bookings: %w", err)
	}
	return n > 0, nil
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

func (r *BookingRepository) ListByLawyer(ctx context.Context, lawyerID string) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{"lawyer_id": lawyerID})
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{})
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []*domain.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// EnsureIndexes creates the booking indexes, most importantly the partial
// unique index that makes two live bookings on one (lawyer, slot) impossible
// at the storage layer. Requires MongoDB 6.0+ for $in in the partial filter.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	active := bson.A{domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "lawyer_id", Value: 1}, {Key: "slot", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": active}}),
		},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "lawyer_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
