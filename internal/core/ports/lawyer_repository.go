package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// LawyerRepository persists lawyer directory profiles.
type LawyerRepository interface {
	// Create inserts a new profile. Returns domain.ErrAlreadyExists when a
	// profile is already present for the same identity.
	Create(ctx context.Context, p *domain.LawyerProfile) error

	// FindByID returns a profile or domain.ErrLawyerNotFound.
	FindByID(ctx context.Context, lawyerID string) (*domain.LawyerProfile, error)

	// FindByIDs returns the profiles that exist among the given ids;
	// missing ids are silently skipped.
	FindByIDs(ctx context.Context, lawyerIDs []string) ([]*domain.LawyerProfile, error)

	// UpdateFields replaces the mutable fields (name, bio, fee, lists)
	// leaving tier, reviews and the consultation counter untouched.
	UpdateFields(ctx context.Context, p *domain.LawyerProfile) error

	// List returns all profiles in creation order.
	List(ctx context.Context) ([]*domain.LawyerProfile, error)

	// AppendReview appends a review to the profile's review list.
	AppendReview(ctx context.Context, lawyerID string, review domain.Review) error

	// IncrementConsultations adds one to the consultationsOffered counter.
	IncrementConsultations(ctx context.Context, lawyerID string) error

	// Delete removes the profile. Bookings and reviews are not cascaded.
	Delete(ctx context.Context, lawyerID string) error
}
