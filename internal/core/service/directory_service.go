package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

type directoryService struct {
	lawyers ports.LawyerRepository
	users   ports.UserRepository
	audit   AuditSink
	log     zerolog.Logger
}

// NewDirectoryService returns the lawyer directory implementation.
func NewDirectoryService(lawyers ports.LawyerRepository, users ports.UserRepository, audit AuditSink, log zerolog.Logger) ports.DirectoryService {
	return &directoryService{lawyers: lawyers, users: users, audit: audit, log: log}
}

func (s *directoryService) CreateProfile(ctx context.Context, caller string, input ports.LawyerProfileInput) error {
	if err := requireRole(ctx, s.users, caller, domain.RoleLawyer); err != nil {
		return fmt.Errorf("create lawyer profile: %w", err)
	}

	normalized, err := normalizeProfileInput(input)
	if err != nil {
		return fmt.Errorf("create lawyer profile: %w", err)
	}

	profile := &domain.LawyerProfile{
		ID:               caller,
		Name:             normalized.Name,
		Bio:              normalized.Bio,
		Fee:              normalized.Fee,
		Tier:             domain.TierBasic,
		Credentials:      normalized.Credentials,
		AreasOfExpertise: normalized.AreasOfExpertise,
		Languages:        normalized.Languages,
		Reviews:          []domain.Review{},
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.lawyers.Create(ctx, profile); err != nil {
		return fmt.Errorf("create lawyer profile: %w", err)
	}

	s.log.Info().Str("lawyer_id", caller).Str("name", profile.Name).Msg("lawyer profile created")
	return nil
}

func (s *directoryService) UpdateProfile(ctx context.Context, caller, lawyerID string, input ports.LawyerProfileInput) error {
	if caller != lawyerID {
		if err := requireAdmin(ctx, s.users, caller); err != nil {
			return fmt.Errorf("update lawyer profile: %w", err)
		}
	}

	existing, err := s.lawyers.FindByID(ctx, lawyerID)
	if err != nil {
		return fmt.Errorf("update lawyer profile: %w", err)
	}

	normalized, err := normalizeProfileInput(input)
	if err != nil {
		return fmt.Errorf("update lawyer profile: %w", err)
	}

	// Only the mutable fields change; tier, reviews and the consultation
	// counter survive every update.
	existing.Name = normalized.Name
	existing.Bio = normalized.Bio
	existing.Fee = normalized.Fee
	existing.Credentials = normalized.Credentials
	existing.AreasOfExpertise = normalized.AreasOfExpertise
	existing.Languages = normalized.Languages

	if err := s.lawyers.UpdateFields(ctx, existing); err != nil {
		return fmt.Errorf("update lawyer profile: %w", err)
	}
	return nil
}

// FindLawyers sorts pro profiles before basic ones. Within a tier the
// repository's creation order is preserved; this is a partial order, not a
// ranking by rating.
func (s *directoryService) FindLawyers(ctx context.Context) ([]*domain.LawyerProfile, error) {
	profiles, err := s.lawyers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("find lawyers: %w", err)
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Tier == domain.TierPro && profiles[j].Tier != domain.TierPro
	})
	return profiles, nil
}

func (s *directoryService) AdminDeleteProfile(ctx context.Context, caller, lawyerID string) error {
	if err := requireAdmin(ctx, s.users, caller); err != nil {
		return fmt.Errorf("delete lawyer profile: %w", err)
	}

	if _, err := s.lawyers.FindByID(ctx, lawyerID); err != nil {
		return fmt.Errorf("delete lawyer profile: %w", err)
	}

	// No cascade: existing bookings and reviews keep their lawyer id and
	// become dangling references the dashboards tolerate.
	if err := s.lawyers.Delete(ctx, lawyerID); err != nil {
		return fmt.Errorf("delete lawyer profile: %w", err)
	}

	s.audit.Record(domain.AuditEvent{
		Kind:      domain.AuditLawyerProfileDeleted,
		ActorID:   caller,
		SubjectID: lawyerID,
		Timestamp: time.Now().UTC(),
	})

	s.log.Warn().Str("actor", caller).Str("lawyer_id", lawyerID).Msg("lawyer profile deleted by admin")
	return nil
}

// normalizeProfileInput trims every field and rejects profiles with an empty
// name, bio, list or a negative fee.
func normalizeProfileInput(input ports.LawyerProfileInput) (ports.LawyerProfileInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Bio = strings.TrimSpace(input.Bio)

	if input.Name == "" || input.Bio == "" {
		return input, fmt.Errorf("%w: name and bio are required", domain.ErrInvalidInput)
	}
	if input.Fee < 0 {
		return input, fmt.Errorf("%w: fee must be non-negative", domain.ErrInvalidInput)
	}

	var err error
	if input.Credentials, err = trimList("credentials", input.Credentials); err != nil {
		return input, err
	}
	if input.AreasOfExpertise, err = trimList("areas_of_expertise", input.AreasOfExpertise); err != nil {
		return input, err
	}
	if input.Languages, err = trimList("languages", input.Languages); err != nil {
		return input, err
	}
	return input, nil
}

func trimList(field string, values []string) ([]string, error) {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, field)
	}
	return trimmed, nil
}
