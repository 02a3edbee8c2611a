package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

func validProfileInput() ports.LawyerProfileInput {
	return ports.LawyerProfileInput{
		Name:             "Jane Advocate",
		Bio:              "Contract law, ten years.",
		Credentials:      []string{"JD", "Bar #1234"},
		AreasOfExpertise: []string{"contracts"},
		Languages:        []string{"en", "es"},
		Fee:              150,
	}
}

func newDirectoryFixture() (*stubLawyerRepo, *stubUserRepo, *stubAuditSink, ports.DirectoryService) {
	lawyers := newStubLawyerRepo()
	users := newStubUserRepo()
	audit := newStubAuditSink()
	return lawyers, users, audit, NewDirectoryService(lawyers, users, audit, discardLogger)
}

func TestDirectoryService_CreateProfile(t *testing.T) {
	lawyers, users, _, svc := newDirectoryFixture()
	users.seed("law1", domain.RoleLawyer, domain.AdminRoleUser)
	ctx := context.Background()

	input := validProfileInput()
	input.Name = "  Jane Advocate  "
	input.Credentials = []string{" JD ", "", "Bar #1234"}
	if err := svc.CreateProfile(ctx, "law1", input); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	p, err := lawyers.FindByID(ctx, "law1")
	if err != nil {
		t.Fatalf("profile not stored: %v", err)
	}
	if p.Name != "Jane Advocate" {
		t.Fatalf("name = %q, want trimmed", p.Name)
	}
	if len(p.Credentials) != 2 {
		t.Fatalf("credentials = %v, want blanks dropped", p.Credentials)
	}
	if p.Tier != domain.TierBasic {
		t.Fatalf("tier = %q, new profiles must start at basic", p.Tier)
	}
	if stored := lawyers.profiles["law1"]; stored.Reviews == nil || len(stored.Reviews) != 0 {
		t.Fatalf("reviews = %v, want empty non-nil list", stored.Reviews)
	}
	if p.ConsultationsOffered != 0 {
		t.Fatalf("consultations = %d, want 0", p.ConsultationsOffered)
	}
}

func TestDirectoryService_CreateProfile_RequiresLawyerRole(t *testing.T) {
	_, users, _, svc := newDirectoryFixture()
	users.seed("client1", domain.RoleClient, domain.AdminRoleUser)
	users.seed("pending1", "", domain.AdminRoleUser)
	ctx := context.Background()

	for _, caller := range []string{"client1", "pending1", "ghost"} {
		if err := svc.CreateProfile(ctx, caller, validProfileInput()); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("caller %q: expected ErrUnauthorized, got %v", caller, err)
		}
	}
}

func TestDirectoryService_CreateProfile_Duplicate(t *testing.T) {
	_, users, _, svc := newDirectoryFixture()
	users.seed("law1", domain.RoleLawyer, domain.AdminRoleUser)
	ctx := context.Background()

	if err := svc.CreateProfile(ctx, "law1", validProfileInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := svc.CreateProfile(ctx, "law1", validProfileInput()); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDirectoryService_CreateProfile_Validation(t *testing.T) {
	_, users, _, svc := newDirectoryFixture()
	users.seed("law1", domain.RoleLawyer, domain.AdminRoleUser)
	ctx := context.Background()

	cases := map[string]func(*ports.LawyerProfileInput){
		"empty name":     func(in *ports.LawyerProfileInput) { in.Name = "  " },
		"empty bio":      func(in *ports.LawyerProfileInput) { in.Bio = "" },
		"negative fee":   func(in *ports.LawyerProfileInput) { in.Fee = -1 },
		"no credentials": func(in *ports.LawyerProfileInput) { in.Credentials = []string{"  "} },
		"no expertise":   func(in *ports.LawyerProfileInput) { in.AreasOfExpertise = nil },
		"no languages":   func(in *ports.LawyerProfileInput) { in.Languages = []string{} },
	}
	for name, mutate := range cases {
		input := validProfileInput()
		mutate(&input)
		if err := svc.CreateProfile(ctx, "law1", input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestDirectoryService_UpdateProfile_PreservesEarnedState(t *testing.T) {
	lawyers, users, _, svc := newDirectoryFixture()
	users.seed("law1", domain.RoleLawyer, domain.AdminRoleUser)
	ctx := context.Background()

	if err := svc.CreateProfile(ctx, "law1", validProfileInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Simulate earned state that an update must never reset.
	stored := lawyers.profiles["law1"]
	stored.Tier = domain.TierPro
	stored.ConsultationsOffered = 7
	stored.Reviews = []domain.Review{{Rating: 5}}

	update := validProfileInput()
	update.Name = "Jane Q. Advocate"
	update.Fee = 200
	if err := svc.UpdateProfile(ctx, "law1", "law1", update); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	p, err := lawyers.FindByID(ctx, "law1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if p.Name != "Jane Q. Advocate" || p.Fee != 200 {
		t.Fatalf("mutable fields not updated: %+v", p)
	}
	if p.Tier != domain.TierPro || p.ConsultationsOffered != 7 || len(p.Reviews) != 1 {
		t.Fatalf("earned state was reset by update: %+v", p)
	}
}

func TestDirectoryService_UpdateProfile_OwnerOrAdminOnly(t *testing.T) {
	_, users, _, svc := newDirectoryFixture()
	users.seed("law1", domain.RoleLawyer, domain.AdminRoleUser)
	users.seed("law2", domain.RoleLawyer, domain.AdminRoleUser)
	users.seed("root", "", domain.AdminRoleAdmin)
	ctx := context.Background()

	if err := svc.CreateProfile(ctx, "law1", validProfileInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.UpdateProfile(ctx, "law2", "law1", validProfileInput()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-owner, got %v", err)
	}
	if err := svc.UpdateProfile(ctx, "root", "law1", validProfileInput()); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestDirectoryService_FindLawyers_ProTierFirst(t *testing.T) {
	lawyers, users, _, svc := newDirectoryFixture()
	ctx := context.Background()

	// Creation order: basic A, pro B, pro C. Expected listing: B, C, A:
	// pro before basic, creation order preserved within each tier.
	for _, id := range []string{"A", "B", "C"} {
		users.seed(id, domain.RoleLawyer, domain.AdminRoleUser)
		if err := svc.CreateProfile(ctx, id, validProfileInput()); err != nil {
			t.Fatalf("create %s failed: %v", id, err)
		}
	}
	lawyers.profiles["B"].Tier = domain.TierPro
	lawyers.profiles["C"].Tier = domain.TierPro

	listed, err := svc.FindLawyers(ctx)
	if err != nil {
		t.Fatalf("FindLawyers failed: %v", err)
	}
	got := make([]string, 0, len(listed))
	for _, p := range listed {
		got = append(got, p.ID)
	}
	want := []string{"B", "C", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDirectoryService_AdminDeleteProfile(t *testing.T) {
	lawyers, users, audit, svc := newDirectoryFixture()
	users.seed("law1", domain.RoleLawyer, domain.AdminRoleUser)
	users.seed("root", "", domain.AdminRoleAdmin)
	ctx := context.Background()

	if err := svc.CreateProfile(ctx, "law1", validProfileInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.AdminDeleteProfile(ctx, "law1", "law1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for owner without admin, got %v", err)
	}
	if err := svc.AdminDeleteProfile(ctx, "root", "law1"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, err := lawyers.FindByID(ctx, "law1"); !errors.Is(err, domain.ErrLawyerNotFound) {
		t.Fatalf("profile still present after delete: %v", err)
	}
	if err := svc.AdminDeleteProfile(ctx, "root", "law1"); !errors.Is(err, domain.ErrLawyerNotFound) {
		t.Fatalf("expected ErrLawyerNotFound on second delete, got %v", err)
	}

	events := audit.recorded()
	if len(events) != 1 || events[0].Kind != domain.AuditLawyerProfileDeleted {
		t.Fatalf("expected one profile-deleted audit event, got %+v", events)
	}
}
