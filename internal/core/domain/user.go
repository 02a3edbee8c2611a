package domain

import "time"

// UserRole is the client-facing role axis, set exactly once via onboarding.
// An empty value means the user has not finished onboarding yet.
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleLawyer UserRole = "lawyer"
)

// IsValid reports whether r is an assignable onboarding role.
func (r UserRole) IsValid() bool {
	return r == RoleClient || r == RoleLawyer
}

// AdminRole is the administrative privilege axis, independent of UserRole.
// Only an existing admin may change it.
type AdminRole string

const (
	AdminRoleAdmin AdminRole = "admin"
	AdminRoleUser  AdminRole = "user"
	AdminRoleGuest AdminRole = "guest"
)

// IsValid reports whether r is a known administrative role.
func (r AdminRole) IsValid() bool {
	return r == AdminRoleAdmin || r == AdminRoleUser || r == AdminRoleGuest
}

// UserProfile holds everything the system knows about a caller identity.
// Identity is the opaque principal supplied by the transport layer; the core
// never mints or rewrites it.
type UserProfile struct {
	Identity  string    `json:"identity" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Role      UserRole  `json:"role,omitempty" bson:"role,omitempty"`
	AdminRole AdminRole `json:"admin_role" bson:"admin_role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Onboarded reports whether the one-shot onboarding step has run.
func (p *UserProfile) Onboarded() bool {
	return p.Role != ""
}

// Account is a credential record for the bundled identity provider. The rest
// of the system never sees it; only the JWT subject (the identity) crosses
// the boundary.
type Account struct {
	Identity     string    `json:"identity"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
