// Package metrics defines and registers all custom Prometheus metrics for the
// consultation API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics use promauto and register with the default registry at package
// initialisation; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "consultation"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts successfully created bookings.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of consultations booked.",
	},
)

// SlotConflictsTotal counts booking attempts rejected because the slot was
// already taken. A high rate relative to created bookings means clients are
// fighting over the same lawyers.
var SlotConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_conflicts_total",
		Help:      "Total number of booking attempts rejected with a slot conflict.",
	},
)

// BookingTransitionsTotal counts status transitions applied to bookings.
// Label:
//   - to: the new status ("confirmed", "completed", "cancelled")
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions, by target status.",
	},
	[]string{"to"},
)

// ── Directory and review metrics ──────────────────────────────────────────────

// ReviewsAddedTotal counts reviews appended to lawyer profiles.
// Label:
//   - rating: the submitted rating ("1" … "5")
var ReviewsAddedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_added_total",
		Help:      "Total number of reviews added, by rating.",
	},
	[]string{"rating"},
)

// AdminOverridesTotal counts administrative role assignments. Every one of
// these is also an audit event; the counter exists for alerting.
var AdminOverridesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_overrides_total",
		Help:      "Total number of admin role overrides.",
	},
)
