package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

// SlotGuard reserves (lawyer, slot) pairs across service instances for the
// duration of the booking write window. Reserve returning false means another
// instance is writing the same slot right now. The guard is an optimization,
// not the source of truth: the repository's uniqueness rule is authoritative.
type SlotGuard interface {
	Reserve(ctx context.Context, lawyerID string, slot int64) (bool, error)
	Release(ctx context.Context, lawyerID string, slot int64) error
}

type bookingService struct {
	bookings ports.BookingRepository
	lawyers  ports.LawyerRepository
	users    ports.UserRepository
	guard    SlotGuard
	locks    *keyedMutex
	audit    AuditSink
	log      zerolog.Logger
}

// NewBookingService returns the booking scheduler implementation.
func NewBookingService(
	bookings ports.BookingRepository,
	lawyers ports.LawyerRepository,
	users ports.UserRepository,
	guard SlotGuard,
	audit AuditSink,
	log zerolog.Logger,
) ports.BookingService {
	return &bookingService{
		bookings: bookings,
		lawyers:  lawyers,
		users:    users,
		guard:    guard,
		locks:    newKeyedMutex(),
		audit:    audit,
		log:      log,
	}
}

// Book creates a pending booking. The conflict check and the insert run under
// a per-lawyer mutex so two concurrent requests for the same (lawyer, slot)
// yield exactly one success and one ErrSlotConflict.
func (s *bookingService) Book(ctx context.Context, caller string, input ports.BookConsultationInput) (int64, error) {
	if err := requireRole(ctx, s.users, caller, domain.RoleClient); err != nil {
		return 0, fmt.Errorf("book consultation: %w", err)
	}

	if input.DurationMin < domain.MinDurationMin || input.DurationMin > domain.MaxDurationMin {
		return 0, fmt.Errorf("book consultation: %w: duration must be between %d and %d minutes",
			domain.ErrInvalidInput, domain.MinDurationMin, domain.MaxDurationMin)
	}
	if input.Fee < 0 {
		return 0, fmt.Errorf("book consultation: %w: fee must be non-negative", domain.ErrInvalidInput)
	}
	if input.Slot <= 0 {
		return 0, fmt.Errorf("book consultation: %w: slot must be a positive timestamp", domain.ErrInvalidInput)
	}

	if _, err := s.lawyers.FindByID(ctx, input.LawyerID); err != nil {
		return 0, fmt.Errorf("book consultation: %w", err)
	}

	s.locks.Lock(input.LawyerID)
	defer s.locks.Unlock(input.LawyerID)

	// Cross-instance guard covering the write window only. A guard failure
	// is logged and tolerated; the in-process lock plus the repository's
	// unique slot rule still hold. The guard is released once the outcome
	// is known either way: after a commit the repository is authoritative,
	// and holding the reservation would block rebooking a cancelled slot.
	reserved, err := s.guard.Reserve(ctx, input.LawyerID, input.Slot)
	if err != nil {
		s.log.Warn().Err(err).Str("lawyer_id", input.LawyerID).Msg("slot guard unavailable, relying on repository")
	} else if !reserved {
		return 0, fmt.Errorf("book consultation: %w", domain.ErrSlotConflict)
	}
	defer s.releaseGuard(ctx, input.LawyerID, input.Slot)

	taken, err := s.bookings.ExistsActiveSlot(ctx, input.LawyerID, input.Slot)
	if err != nil {
		return 0, fmt.Errorf("book consultation: %w", err)
	}
	if taken {
		return 0, fmt.Errorf("book consultation: %w", domain.ErrSlotConflict)
	}

	id, err := s.bookings.NextID(ctx)
	if err != nil {
		return 0, fmt.Errorf("book consultation: allocate id: %w", err)
	}

	booking := &domain.Booking{
		ID:          id,
		LawyerID:    input.LawyerID,
		ClientID:    caller,
		Slot:        input.Slot,
		DurationMin: input.DurationMin,
		Fee:         input.Fee,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return 0, fmt.Errorf("book consultation: %w", err)
	}

	s.log.Info().
		Int64("booking_id", id).
		Str("lawyer_id", input.LawyerID).
		Str("client_id", caller).
		Int64("slot", input.Slot).
		Msg("consultation booked")

	return id, nil
}

func (s *bookingService) releaseGuard(ctx context.Context, lawyerID string, slot int64) {
	if err := s.guard.Release(ctx, lawyerID, slot); err != nil {
		s.log.Warn().Err(err).Str("lawyer_id", lawyerID).Msg("failed to release slot guard")
	}
}

// UpdateStatus drives the state machine. Which edges are legal depends on
// whether the caller is the booking's lawyer or client:
//
//	lawyer: pending→confirmed, pending→cancelled, confirmed→cancelled, confirmed→completed
//	client: pending→cancelled, confirmed→cancelled
//
// Anyone else is rejected outright. Edges missing from the machine entirely,
// including anything out of a terminal state, fail with ErrInvalidTransition.
func (s *bookingService) UpdateStatus(ctx context.Context, caller string, bookingID int64, newStatus domain.BookingStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("update booking status: %w: unknown status %q", domain.ErrInvalidInput, newStatus)
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	isLawyer := caller == booking.LawyerID
	isClient := caller == booking.ClientID
	if !isLawyer && !isClient {
		return fmt.Errorf("update booking status: %w", domain.ErrUnauthorized)
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("update booking status: %w (from %s to %s)",
			domain.ErrInvalidTransition, booking.Status, newStatus)
	}

	allowed := (isLawyer && domain.LawyerCanTransition(booking.Status, newStatus)) ||
		(isClient && domain.ClientCanTransition(booking.Status, newStatus))
	if !allowed {
		return fmt.Errorf("update booking status: %w", domain.ErrUnauthorized)
	}

	s.locks.Lock(booking.LawyerID)
	defer s.locks.Unlock(booking.LawyerID)

	// Conditional on the status we read: a concurrent transition surfaces
	// as ErrInvalidTransition instead of silently double-applying.
	if err := s.bookings.UpdateStatus(ctx, bookingID, booking.Status, newStatus); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	// The counter increments on the single legal edge into completed, so it
	// can never increment twice for one booking.
	if newStatus == domain.StatusCompleted {
		if err := s.lawyers.IncrementConsultations(ctx, booking.LawyerID); err != nil {
			s.log.Error().Err(err).Str("lawyer_id", booking.LawyerID).Msg("failed to increment consultation counter")
		}
	}

	s.audit.Record(domain.AuditEvent{
		Kind:      domain.AuditBookingStatusChanged,
		ActorID:   caller,
		SubjectID: booking.LawyerID,
		Detail:    fmt.Sprintf("booking %d: %s -> %s", bookingID, booking.Status, newStatus),
		Timestamp: time.Now().UTC(),
	})

	s.log.Info().
		Int64("booking_id", bookingID).
		Str("from", string(booking.Status)).
		Str("to", string(newStatus)).
		Msg("booking status updated")

	return nil
}

func (s *bookingService) AdminListAll(ctx context.Context, caller string) ([]*domain.Booking, error) {
	if err := requireAdmin(ctx, s.users, caller); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return s.bookings.ListAll(ctx)
}

func (s *bookingService) AdminDelete(ctx context.Context, caller string, bookingID int64) error {
	if err := requireAdmin(ctx, s.users, caller); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.audit.Record(domain.AuditEvent{
		Kind:      domain.AuditBookingDeleted,
		ActorID:   caller,
		SubjectID: booking.LawyerID,
		Detail:    fmt.Sprintf("booking %d purged", bookingID),
		Timestamp: time.Now().UTC(),
	})

	s.log.Warn().Int64("booking_id", bookingID).Str("actor", caller).Msg("booking deleted by admin")
	return nil
}
