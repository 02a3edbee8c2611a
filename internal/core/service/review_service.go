package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

type reviewService struct {
	lawyers  ports.LawyerRepository
	bookings ports.BookingRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewReviewService returns the review ledger implementation.
func NewReviewService(lawyers ports.LawyerRepository, bookings ports.BookingRepository, users ports.UserRepository, log zerolog.Logger) ports.ReviewService {
	return &reviewService{lawyers: lawyers, bookings: bookings, users: users, log: log}
}

// Add appends a review after the eligibility check: the caller must hold at
// least one completed booking with the lawyer. Nothing prevents the same
// client from reviewing the same lawyer again; each submission appends
// independently. Documented policy, not an oversight.
func (s *reviewService) Add(ctx context.Context, caller, lawyerID string, rating int64, comment string) error {
	if err := requireRole(ctx, s.users, caller, domain.RoleClient); err != nil {
		return fmt.Errorf("add review: %w", err)
	}

	if rating < 1 || rating > 5 {
		return fmt.Errorf("add review: %w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}

	if _, err := s.lawyers.FindByID(ctx, lawyerID); err != nil {
		return fmt.Errorf("add review: %w", err)
	}

	eligible, err := s.bookings.HasCompleted(ctx, caller, lawyerID)
	if err != nil {
		return fmt.Errorf("add review: %w", err)
	}
	if !eligible {
		return fmt.Errorf("add review: %w", domain.ErrNotEligible)
	}

	review := domain.Review{Rating: rating, Comment: strings.TrimSpace(comment)}
	if err := s.lawyers.AppendReview(ctx, lawyerID, review); err != nil {
		return fmt.Errorf("add review: %w", err)
	}

	s.log.Info().
		Str("lawyer_id", lawyerID).
		Str("client_id", caller).
		Int64("rating", rating).
		Msg("review added")

	return nil
}
