package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// ClientDashboard is the read model for a client's home screen: all of the
// caller's bookings plus the referenced lawyer profiles, deduplicated by
// lawyer id. Lawyers deleted since booking are simply absent from Lawyers.
type ClientDashboard struct {
	Bookings []*domain.Booking
	Lawyers  []*domain.LawyerProfile
}

// BookingSummary holds the per-status counts shown on the lawyer dashboard,
// computed over the lawyer's bookings at read time.
type BookingSummary struct {
	Pending   int64
	Confirmed int64
}

// LawyerDashboard is the read model for a lawyer's home screen.
type LawyerDashboard struct {
	Profile  *domain.LawyerProfile
	Bookings []*domain.Booking
	Summary  BookingSummary
}

// DashboardService composes read-only views over the scheduler, the
// directory and the review ledger.
type DashboardService interface {
	// ClientDashboard returns the caller's bookings and the lawyers they
	// reference.
	ClientDashboard(ctx context.Context, caller string) (*ClientDashboard, error)

	// LawyerDashboard returns the profile, bookings and summary for a
	// lawyer. The caller must be that lawyer or an admin.
	LawyerDashboard(ctx context.Context, caller, lawyerID string) (*LawyerDashboard, error)
}
