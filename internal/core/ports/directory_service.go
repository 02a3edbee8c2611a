package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// LawyerProfileInput carries the mutable profile fields for create/update.
type LawyerProfileInput struct {
	Name             string
	Bio              string
	Credentials      []string
	AreasOfExpertise []string
	Languages        []string
	Fee              int64
}

// DirectoryService owns lawyer profile records and directory listing.
type DirectoryService interface {
	// CreateProfile creates the caller's lawyer profile. The caller must
	// hold the lawyer role and must not already have a profile. New
	// profiles start at tier basic with no reviews.
	CreateProfile(ctx context.Context, caller string, input LawyerProfileInput) error

	// UpdateProfile replaces the mutable fields of an existing profile.
	// The caller must own the profile or be an admin. Tier, reviews and
	// the consultation counter are preserved.
	UpdateProfile(ctx context.Context, caller, lawyerID string, input LawyerProfileInput) error

	// FindLawyers returns all profiles, pro tier first, stable creation
	// order within each tier.
	FindLawyers(ctx context.Context) ([]*domain.LawyerProfile, error)

	// AdminDeleteProfile removes a profile without cascading to bookings
	// or reviews. Admin only.
	AdminDeleteProfile(ctx context.Context, caller, lawyerID string) error
}
