package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

type identityService struct {
	users ports.UserRepository
	audit AuditSink
	log   zerolog.Logger
}

// NewIdentityService returns the authorization gate implementation.
func NewIdentityService(users ports.UserRepository, audit AuditSink, log zerolog.Logger) ports.IdentityService {
	return &identityService{users: users, audit: audit, log: log}
}

func (s *identityService) CompleteOnboarding(ctx context.Context, caller string, role domain.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("complete onboarding: %w: unknown role %q", domain.ErrInvalidInput, role)
	}

	if err := s.users.SetRoleOnce(ctx, caller, role); err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}

	s.log.Info().Str("identity", caller).Str("role", string(role)).Msg("onboarding completed")
	return nil
}

func (s *identityService) SaveProfile(ctx context.Context, caller, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("save profile: %w: name is empty", domain.ErrInvalidInput)
	}

	if err := s.users.SaveName(ctx, caller, name); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *identityService) Profile(ctx context.Context, caller string) (*domain.UserProfile, error) {
	return s.ProfileFor(ctx, caller)
}

// ProfileFor returns nil without error for unknown identities: the caller
// distinguishes "no profile yet" (onboarding flow) from real failures.
func (s *identityService) ProfileFor(ctx context.Context, identity string) (*domain.UserProfile, error) {
	profile, err := s.users.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// AdminRoleOf defaults to the plain user role for identities that have never
// been stored or never had an admin role assigned.
func (s *identityService) AdminRoleOf(ctx context.Context, caller string) (domain.AdminRole, error) {
	profile, err := s.users.FindByIdentity(ctx, caller)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AdminRoleUser, nil
		}
		return "", fmt.Errorf("get admin role: %w", err)
	}
	if profile.AdminRole == "" {
		return domain.AdminRoleUser, nil
	}
	return profile.AdminRole, nil
}

func (s *identityService) IsAdmin(ctx context.Context, caller string) (bool, error) {
	role, err := s.AdminRoleOf(ctx, caller)
	if err != nil {
		return false, err
	}
	return role == domain.AdminRoleAdmin, nil
}

func (s *identityService) AssignAdminRole(ctx context.Context, caller, target string, role domain.AdminRole) error {
	if !role.IsValid() {
		return fmt.Errorf("assign admin role: %w: unknown role %q", domain.ErrInvalidInput, role)
	}

	if err := requireAdmin(ctx, s.users, caller); err != nil {
		return fmt.Errorf("assign admin role: %w", err)
	}

	if err := s.users.SetAdminRole(ctx, target, role); err != nil {
		return fmt.Errorf("assign admin role: %w", err)
	}

	// Privilege changes silently alter authorization outcomes everywhere
	// else, so they always leave an audit trail.
	s.audit.Record(domain.AuditEvent{
		Kind:      domain.AuditAdminRoleAssigned,
		ActorID:   caller,
		SubjectID: target,
		Detail:    string(role),
		Timestamp: time.Now().UTC(),
	})

	s.log.Warn().
		Str("actor", caller).
		Str("target", target).
		Str("admin_role", string(role)).
		Msg("admin role overridden")

	return nil
}

func (s *identityService) ListUsers(ctx context.Context, caller string) ([]*domain.UserProfile, error) {
	if err := requireAdmin(ctx, s.users, caller); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return s.users.ListAll(ctx)
}

// requireAdmin fails with domain.ErrUnauthorized unless the identity holds
// the admin role. Shared by every admin-gated operation in this package.
func requireAdmin(ctx context.Context, users ports.UserRepository, identity string) error {
	profile, err := users.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}
	if profile.AdminRole != domain.AdminRoleAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}

// requireRole fails with domain.ErrUnauthorized unless the identity finished
// onboarding with the given client/lawyer role. Profiles without a role are
// still onboarding and are denied every role-gated operation.
func requireRole(ctx context.Context, users ports.UserRepository, identity string, role domain.UserRole) error {
	profile, err := users.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}
	if profile.Role != role {
		return domain.ErrUnauthorized
	}
	return nil
}
