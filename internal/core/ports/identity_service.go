package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// IdentityService is the authorization gate: it owns user profiles and both
// role axes. Every operation takes the caller identity explicitly; nothing is
// read from ambient state.
type IdentityService interface {
	// CompleteOnboarding sets the caller's client/lawyer role exactly once.
	// A second call fails with domain.ErrAlreadyOnboarded.
	CompleteOnboarding(ctx context.Context, caller string, role domain.UserRole) error

	// SaveProfile upserts the caller's display name. Any role carried by
	// the caller is ignored; roles change only via onboarding or admin
	// override.
	SaveProfile(ctx context.Context, caller, name string) error

	// Profile returns the caller's profile, or nil when none exists yet.
	Profile(ctx context.Context, caller string) (*domain.UserProfile, error)

	// ProfileFor returns another identity's profile, or nil when absent.
	ProfileFor(ctx context.Context, identity string) (*domain.UserProfile, error)

	// AdminRoleOf returns the caller's administrative role. Unknown
	// identities default to domain.AdminRoleUser.
	AdminRoleOf(ctx context.Context, caller string) (domain.AdminRole, error)

	// IsAdmin reports whether the caller holds domain.AdminRoleAdmin.
	IsAdmin(ctx context.Context, caller string) (bool, error)

	// AssignAdminRole overwrites the target's administrative role. The
	// caller must be an admin. The override is recorded as an audit event.
	AssignAdminRole(ctx context.Context, caller, target string, role domain.AdminRole) error

	// ListUsers returns every user profile. Admin only.
	ListUsers(ctx context.Context, caller string) ([]*domain.UserProfile, error)
}
