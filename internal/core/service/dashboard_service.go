package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

type dashboardService struct {
	bookings ports.BookingRepository
	lawyers  ports.LawyerRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewDashboardService returns the read-only dashboard aggregator.
func NewDashboardService(bookings ports.BookingRepository, lawyers ports.LawyerRepository, users ports.UserRepository, log zerolog.Logger) ports.DashboardService {
	return &dashboardService{bookings: bookings, lawyers: lawyers, users: users, log: log}
}

// ClientDashboard joins the caller's bookings with the lawyer profiles they
// reference, deduplicated by lawyer id. A lawyer deleted since booking simply
// does not appear in the profile list; the booking itself still shows with
// its snapshotted fee.
func (s *dashboardService) ClientDashboard(ctx context.Context, caller string) (*ports.ClientDashboard, error) {
	bookings, err := s.bookings.ListByClient(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("client dashboard: %w", err)
	}

	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.LawyerID]; ok {
			continue
		}
		seen[b.LawyerID] = struct{}{}
		ids = append(ids, b.LawyerID)
	}

	lawyers, err := s.lawyers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("client dashboard: %w", err)
	}

	return &ports.ClientDashboard{Bookings: bookings, Lawyers: lawyers}, nil
}

// LawyerDashboard returns the profile, the full booking list and per-status
// counts. Counts are computed here at read time, never stored.
func (s *dashboardService) LawyerDashboard(ctx context.Context, caller, lawyerID string) (*ports.LawyerDashboard, error) {
	if caller != lawyerID {
		if err := requireAdmin(ctx, s.users, caller); err != nil {
			return nil, fmt.Errorf("lawyer dashboard: %w", err)
		}
	}

	profile, err := s.lawyers.FindByID(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("lawyer dashboard: %w", err)
	}

	bookings, err := s.bookings.ListByLawyer(ctx, lawyerID)
	if err != nil {
		return nil, fmt.Errorf("lawyer dashboard: %w", err)
	}

	var summary ports.BookingSummary
	for _, b := range bookings {
		switch b.Status {
		case domain.StatusPending:
			summary.Pending++
		case domain.StatusConfirmed:
			summary.Confirmed++
		}
	}

	return &ports.LawyerDashboard{Profile: profile, Bookings: bookings, Summary: summary}, nil
}
