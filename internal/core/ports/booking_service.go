package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// BookConsultationInput carries everything needed to create a booking. Fee is
// snapshotted onto the booking at creation time.
type BookConsultationInput struct {
	LawyerID    string
	Slot        int64
	DurationMin int64
	Fee         int64
}

// BookingService owns the booking ledger and the status state machine.
type BookingService interface {
	// Book creates a pending booking and returns its id. The caller must
	// hold the client role. Fails with domain.ErrSlotConflict when a
	// non-cancelled booking already holds the same (lawyer, slot); the
	// conflict check and the insert are atomic per lawyer.
	Book(ctx context.Context, caller string, input BookConsultationInput) (int64, error)

	// UpdateStatus moves a booking through the state machine. The set of
	// legal edges depends on whether the caller is the booking's lawyer or
	// client; anyone else fails with domain.ErrUnauthorized. A transition
	// into completed increments the lawyer's consultation counter exactly
	// once.
	UpdateStatus(ctx context.Context, caller string, bookingID int64, newStatus domain.BookingStatus) error

	// AdminListAll returns the full ledger. Admin only.
	AdminListAll(ctx context.Context, caller string) ([]*domain.Booking, error)

	// AdminDelete hard-removes a booking, bypassing the state machine.
	// Admin only.
	AdminDelete(ctx context.Context, caller string, bookingID int64) error
}
