package domain

import "time"

// BookingStatus represents the lifecycle state of a consultation booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Consultation duration bounds in minutes. The UI enforces these too, but the
// service re-validates because clients cannot be trusted.
const (
	MinDurationMin = 30
	MaxDurationMin = 180
)

// validTransitions defines the allowed state machine edges regardless of who
// requests them. Completed and Cancelled are terminal: no outgoing edges.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// lawyerTransitions and clientTransitions split the edge table by actor: the
// lawyer on a booking drives it forward (and may cancel), the client may only
// cancel while the booking is still live.
var lawyerTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

var clientTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// IsValid reports whether s is one of the four known statuses.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted out of s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the edge s → next exists for any actor.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return contains(validTransitions[s], next)
}

// LawyerCanTransition reports whether the booking's lawyer may move s → next.
func LawyerCanTransition(from, to BookingStatus) bool {
	return contains(lawyerTransitions[from], to)
}

// ClientCanTransition reports whether the booking's client may move s → next.
func ClientCanTransition(from, to BookingStatus) bool {
	return contains(clientTransitions[from], to)
}

func contains(set []BookingStatus, s BookingStatus) bool {
	for _, allowed := range set {
		if allowed == s {
			return true
		}
	}
	return false
}

// Booking is the scheduling ledger entry. IDs are allocated from a global
// counter and are strictly increasing, never reused. Slot is an absolute
// point in time with nanosecond resolution; two non-cancelled bookings for
// the same lawyer may never share the same slot value.
type Booking struct {
	ID          int64         `json:"booking_id" bson:"_id"`
	LawyerID    string        `json:"lawyer_id" bson:"lawyer_id"`
	ClientID    string        `json:"client_id" bson:"client_id"`
	Slot        int64         `json:"slot" bson:"slot"`
	DurationMin int64         `json:"duration_min" bson:"duration_min"`
	Fee         int64         `json:"fee" bson:"fee"`
	Status      BookingStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}
