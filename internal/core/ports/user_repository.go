package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// UserRepository persists user profiles and both role axes.
type UserRepository interface {
	// FindByIdentity returns the profile for an identity, or
	// domain.ErrUserNotFound when no record exists yet.
	FindByIdentity(ctx context.Context, identity string) (*domain.UserProfile, error)

	// SaveName upserts the display name only. Roles are never written
	// through this path.
	SaveName(ctx context.Context, identity, name string) error

	// SetRoleOnce sets the onboarding role if and only if it is currently
	// unset, creating the record when missing. Returns
	// domain.ErrAlreadyOnboarded when a role is already present.
	SetRoleOnce(ctx context.Context, identity string, role domain.UserRole) error

	// SetAdminRole unconditionally overwrites the administrative role,
	// creating the record when missing.
	SetAdminRole(ctx context.Context, identity string, role domain.AdminRole) error

	// ListAll returns every user profile in creation order.
	ListAll(ctx context.Context) ([]*domain.UserProfile, error)
}
