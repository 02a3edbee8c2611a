package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

type bookingFixture struct {
	bookings *stubBookingRepo
	lawyers  *stubLawyerRepo
	users    *stubUserRepo
	audit    *stubAuditSink
	svc      ports.BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings: newStubBookingRepo(),
		lawyers:  newStubLawyerRepo(),
		users:    newStubUserRepo(),
		audit:    newStubAuditSink(),
	}
	f.svc = NewBookingService(f.bookings, f.lawyers, f.users, newStubSlotGuard(), f.audit, discardLogger)

	f.users.seed("client1", domain.RoleClient, domain.AdminRoleUser)
	f.users.seed("client2", domain.RoleClient, domain.AdminRoleUser)
	f.users.seed("law1", domain.RoleLawyer, domain.AdminRoleUser)
	f.users.seed("root", "", domain.AdminRoleAdmin)
	_ = f.lawyers.Create(context.Background(), &domain.LawyerProfile{ID: "law1", Name: "Jane"})
	return f
}

func validBookingInput() ports.BookConsultationInput {
	return ports.BookConsultationInput{LawyerID: "law1", Slot: 1_700_000_000_000_000_000, DurationMin: 60, Fee: 150}
}

func TestBookingService_Book(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	id, err := f.svc.Book(ctx, "client1", validBookingInput())
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("first booking id = %d, want 1", id)
	}

	b, err := f.bookings.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("booking not stored: %v", err)
	}
	if b.Status != domain.StatusPending {
		t.Fatalf("status = %q, new bookings must start pending", b.Status)
	}
	if b.ClientID != "client1" || b.LawyerID != "law1" {
		t.Fatalf("parties wrong: %+v", b)
	}
	if b.Fee != 150 {
		t.Fatalf("fee = %d, want snapshot 150", b.Fee)
	}

	// A later change to the lawyer's listed fee must not touch it.
	f.lawyers.profiles["law1"].Fee = 999
	b, _ = f.bookings.FindByID(ctx, id)
	if b.Fee != 150 {
		t.Fatalf("fee changed after profile update: %d", b.Fee)
	}
}

func TestBookingService_Book_IDsStrictlyIncrease(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	in := validBookingInput()
	id1, err := f.svc.Book(ctx, "client1", in)
	if err != nil {
		t.Fatalf("first Book failed: %v", err)
	}
	in.Slot += 3600_000_000_000
	id2, err := f.svc.Book(ctx, "client1", in)
	if err != nil {
		t.Fatalf("second Book failed: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("ids must strictly increase: %d then %d", id1, id2)
	}
}

func TestBookingService_Book_RequiresClientRole(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	for _, caller := range []string{"law1", "ghost"} {
		if _, err := f.svc.Book(ctx, caller, validBookingInput()); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("caller %q: expected ErrUnauthorized, got %v", caller, err)
		}
	}
}

func TestBookingService_Book_Validation(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	cases := map[string]func(*ports.BookConsultationInput){
		"duration too short": func(in *ports.BookConsultationInput) { in.DurationMin = 29 },
		"duration too long":  func(in *ports.BookConsultationInput) { in.DurationMin = 181 },
		"negative fee":       func(in *ports.BookConsultationInput) { in.Fee = -1 },
		"zero slot":          func(in *ports.BookConsultationInput) { in.Slot = 0 },
	}
	for name, mutate := range cases {
		in := validBookingInput()
		mutate(&in)
		if _, err := f.svc.Book(ctx, "client1", in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	// Boundary durations are inclusive.
	for _, dur := range []int64{30, 180} {
		in := validBookingInput()
		in.DurationMin = dur
		in.Slot += dur * 1_000_000_000
		if _, err := f.svc.Book(ctx, "client1", in); err != nil {
			t.Errorf("duration %d should be accepted: %v", dur, err)
		}
	}
}

func TestBookingService_Book_UnknownLawyer(t *testing.T) {
	f := newBookingFixture()

	in := validBookingInput()
	in.LawyerID = "ghost"
	if _, err := f.svc.Book(context.Background(), "client1", in); !errors.Is(err, domain.ErrLawyerNotFound) {
		t.Fatalf("expected ErrLawyerNotFound, got %v", err)
	}
}

func TestBookingService_Book_SlotConflict(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	if _, err := f.svc.Book(ctx, "client1", validBookingInput()); err != nil {
		t.Fatalf("first Book failed: %v", err)
	}
	// Same slot, even by a different client, must conflict.
	if _, err := f.svc.Book(ctx, "client2", validBookingInput()); !errors.Is(err, domain.ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}
}

func TestBookingService_Book_CancelledSlotIsFree(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	id, err := f.svc.Book(ctx, "client1", validBookingInput())
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, "client1", id, domain.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	id2, err := f.svc.Book(ctx, "client2", validBookingInput())
	if err != nil {
		t.Fatalf("rebooking a cancelled slot failed: %v", err)
	}
	if id2 == id {
		t.Fatalf("booking id %d reused after delete", id)
	}
}

func TestBookingService_Book_ConcurrentSameSlot(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Book(ctx, "client1", validBookingInput())
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != n-1 {
		t.Fatalf("got %d successes and %d conflicts, want exactly 1 and %d", successes, conflicts, n-1)
	}
}

func (f *bookingFixture) mustBook(t *testing.T, client string) int64 {
	t.Helper()
	in := validBookingInput()
	in.Slot += int64(len(f.bookings.bookings)) * 3600_000_000_000
	id, err := f.svc.Book(context.Background(), client, in)
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	return id
}

func TestBookingService_UpdateStatus_LawyerDrivesForward(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	id := f.mustBook(t, "client1")

	if err := f.svc.UpdateStatus(ctx, "law1", id, domain.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, "law1", id, domain.StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	b, _ := f.bookings.FindByID(ctx, id)
	if b.Status != domain.StatusCompleted {
		t.Fatalf("status = %q, want completed", b.Status)
	}
}

func TestBookingService_UpdateStatus_ClientMayOnlyCancel(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	id := f.mustBook(t, "client1")
	// confirm and complete exist in the state machine but are not client
	// edges: authorization failure, not an invalid transition.
	if err := f.svc.UpdateStatus(ctx, "client1", id, domain.StatusConfirmed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("client confirm: expected ErrUnauthorized, got %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, "client1", id, domain.StatusCancelled); err != nil {
		t.Fatalf("client cancel from pending failed: %v", err)
	}

	id2 := f.mustBook(t, "client1")
	if err := f.svc.UpdateStatus(ctx, "law1", id2, domain.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, "client1", id2, domain.StatusCompleted); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("client complete: expected ErrUnauthorized, got %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, "client1", id2, domain.StatusCancelled); err != nil {
		t.Fatalf("client cancel from confirmed failed: %v", err)
	}
}

func TestBookingService_UpdateStatus_ThirdPartyRejected(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	id := f.mustBook(t, "client1")

	// Neither another client nor an admin is a party to the booking.
	for _, caller := range []string{"client2", "root", "ghost"} {
		if err := f.svc.UpdateStatus(ctx, caller, id, domain.StatusCancelled); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("caller %q: expected ErrUnauthorized, got %v", caller, err)
		}
	}
}

func TestBookingService_UpdateStatus_InvalidEdges(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	id := f.mustBook(t, "client1")
	// pending -> completed skips confirmation; no actor holds that edge.
	if err := f.svc.UpdateStatus(ctx, "law1", id, domain.StatusCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pending->completed: expected ErrInvalidTransition, got %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, "law1", id, "rescheduled"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown status: expected ErrInvalidInput, got %v", err)
	}

	if err := f.svc.UpdateStatus(ctx, "client1", id, domain.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	// Terminal states have no outgoing edges, for either party.
	if err := f.svc.UpdateStatus(ctx, "law1", id, domain.StatusConfirmed); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancelled->confirmed: expected ErrInvalidTransition, got %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, "client1", id, domain.StatusCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancelled->cancelled: expected ErrInvalidTransition, got %v", err)
	}

	if err := f.svc.UpdateStatus(ctx, "law1", 999, domain.StatusConfirmed); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("unknown booking: expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingService_UpdateStatus_CompletionIncrementsCounterOnce(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	id := f.mustBook(t, "client1")

	if err := f.svc.UpdateStatus(ctx, "law1", id, domain.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if f.lawyers.profiles["law1"].ConsultationsOffered != 0 {
		t.Fatal("counter must not move before completion")
	}

	if err := f.svc.UpdateStatus(ctx, "law1", id, domain.StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if got := f.lawyers.profiles["law1"].ConsultationsOffered; got != 1 {
		t.Fatalf("counter = %d, want 1", got)
	}

	// Replaying the completion fails and must not double count.
	if err := f.svc.UpdateStatus(ctx, "law1", id, domain.StatusCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on replay, got %v", err)
	}
	if got := f.lawyers.profiles["law1"].ConsultationsOffered; got != 1 {
		t.Fatalf("counter = %d after replay, want 1", got)
	}
}

func TestBookingService_UpdateStatus_Audited(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	id := f.mustBook(t, "client1")

	if err := f.svc.UpdateStatus(ctx, "law1", id, domain.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	events := f.audit.recorded()
	if len(events) != 1 || events[0].Kind != domain.AuditBookingStatusChanged {
		t.Fatalf("expected one status-changed audit event, got %+v", events)
	}
	if events[0].ActorID != "law1" || events[0].SubjectID != "law1" {
		t.Fatalf("unexpected audit attribution: %+v", events[0])
	}
}

func TestBookingService_AdminListAll(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	f.mustBook(t, "client1")
	f.mustBook(t, "client2")

	if _, err := f.svc.AdminListAll(ctx, "client1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	all, err := f.svc.AdminListAll(ctx, "root")
	if err != nil {
		t.Fatalf("AdminListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(all))
	}
}

func TestBookingService_AdminDelete(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	id := f.mustBook(t, "client1")

	if err := f.svc.AdminDelete(ctx, "client1", id); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := f.svc.AdminDelete(ctx, "root", id); err != nil {
		t.Fatalf("AdminDelete failed: %v", err)
	}
	if _, err := f.bookings.FindByID(ctx, id); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("booking still present: %v", err)
	}
	if err := f.svc.AdminDelete(ctx, "root", id); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound on second delete, got %v", err)
	}

	// The freed id is never reused.
	next := f.mustBook(t, "client1")
	if next <= id {
		t.Fatalf("id %d allocated at or below deleted id %d", next, id)
	}

	events := f.audit.recorded()
	if len(events) != 1 || events[0].Kind != domain.AuditBookingDeleted {
		t.Fatalf("expected one booking-deleted audit event, got %+v", events)
	}
}
