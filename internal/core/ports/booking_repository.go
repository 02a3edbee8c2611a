package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// BookingRepository persists the booking ledger and the global id counter.
type BookingRepository interface {
	// NextID atomically allocates the next booking id. IDs are strictly
	// increasing and never reused, including across deletes.
	NextID(ctx context.Context) (int64, error)

	// Create inserts a new booking. Returns domain.ErrSlotConflict when a
	// non-cancelled booking already holds the same (lawyer_id, slot).
	Create(ctx context.Context, b *domain.Booking) error

	// FindByID returns a booking or domain.ErrBookingNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)

	// ExistsActiveSlot reports whether any non-cancelled booking exists for
	// the exact (lawyerID, slot) pair.
	ExistsActiveSlot(ctx context.Context, lawyerID string, slot int64) (bool, error)

	// UpdateStatus moves a booking from one status to another as a single
	// conditional write. Returns domain.ErrInvalidTransition when the
	// booking is no longer in the expected from status.
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error

	// HasCompleted reports whether the client holds at least one completed
	// booking with the lawyer.
	HasCompleted(ctx context.Context, clientID, lawyerID string) (bool, error)

	ListByClient(ctx context.Context, clientID string) ([]*domain.Booking, error)
	ListByLawyer(ctx context.Context, lawyerID string) ([]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)

	// Delete hard-removes a booking, bypassing the state machine. Admin only.
	Delete(ctx context.Context, id int64) error
}
