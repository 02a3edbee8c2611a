package domain

import "time"

// Audit event kinds.
const (
	AuditAdminRoleAssigned    = "admin_role_assigned"
	AuditBookingStatusChanged = "booking_status_changed"
	AuditBookingDeleted       = "booking_deleted"
	AuditLawyerProfileDeleted = "lawyer_profile_deleted"
)

// AuditEvent records a privileged or state-changing action for later review.
// Admin role overrides must always be audited: they silently change
// authorization outcomes for every other operation.
type AuditEvent struct {
	Kind      string    `json:"kind" bson:"kind"`
	ActorID   string    `json:"actor_id" bson:"actor_id"`
	SubjectID string    `json:"subject_id" bson:"subject_id"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
