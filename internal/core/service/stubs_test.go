package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// --- user repository stub ---

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.UserProfile
	order []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.UserProfile)}
}

func (r *stubUserRepo) seed(identity string, role domain.UserRole, adminRole domain.AdminRole) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[identity] = &domain.UserProfile{Identity: identity, Role: role, AdminRole: adminRole}
	r.order = append(r.order, identity)
}

func (r *stubUserRepo) FindByIdentity(_ context.Context, identity string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.users[identity]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubUserRepo) SaveName(_ context.Context, identity, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.users[identity]
	if !ok {
		p = &domain.UserProfile{Identity: identity, AdminRole: domain.AdminRoleUser}
		r.users[identity] = p
		r.order = append(r.order, identity)
	}
	p.Name = name
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubUserRepo) SetRoleOnce(_ context.Context, identity string, role domain.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.users[identity]
	if !ok {
		r.users[identity] = &domain.UserProfile{Identity: identity, Role: role, AdminRole: domain.AdminRoleUser}
		r.order = append(r.order, identity)
		return nil
	}
	if p.Role != "" {
		return domain.ErrAlreadyOnboarded
	}
	p.Role = role
	return nil
}

func (r *stubUserRepo) SetAdminRole(_ context.Context, identity string, role domain.AdminRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.users[identity]
	if !ok {
		r.users[identity] = &domain.UserProfile{Identity: identity, AdminRole: role}
		r.order = append(r.order, identity)
		return nil
	}
	p.AdminRole = role
	return nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.UserProfile, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.users[id]
		out = append(out, &clone)
	}
	return out, nil
}

// --- lawyer repository stub ---

type stubLawyerRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.LawyerProfile
	order    []string
}

func newStubLawyerRepo() *stubLawyerRepo {
	return &stubLawyerRepo{profiles: make(map[string]*domain.LawyerProfile)}
}

func cloneProfile(p *domain.LawyerProfile) *domain.LawyerProfile {
	clone := *p
	if p.Reviews != nil {
		clone.Reviews = make([]domain.Review, len(p.Reviews))
		copy(clone.Reviews, p.Reviews)
	}
	return &clone
}

func (r *stubLawyerRepo) Create(_ context.Context, p *domain.LawyerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[p.ID]; exists {
		return domain.ErrAlreadyExists
	}
	r.profiles[p.ID] = cloneProfile(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *stubLawyerRepo) FindByID(_ context.Context, lawyerID string) (*domain.LawyerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[lawyerID]
	if !ok {
		return nil, domain.ErrLawyerNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubLawyerRepo) FindByIDs(_ context.Context, lawyerIDs []string) ([]*domain.LawyerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.LawyerProfile, 0, len(lawyerIDs))
	for _, id := range lawyerIDs {
		if p, ok := r.profiles[id]; ok {
			out = append(out, cloneProfile(p))
		}
	}
	return out, nil
}

func (r *stubLawyerRepo) UpdateFields(_ context.Context, p *domain.LawyerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.profiles[p.ID]
	if !ok {
		return domain.ErrLawyerNotFound
	}
	existing.Name = p.Name
	existing.Bio = p.Bio
	existing.Fee = p.Fee
	existing.Credentials = p.Credentials
	existing.AreasOfExpertise = p.AreasOfExpertise
	existing.Languages = p.Languages
	return nil
}

func (r *stubLawyerRepo) List(_ context.Context) ([]*domain.LawyerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.LawyerProfile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneProfile(r.profiles[id]))
	}
	return out, nil
}

func (r *stubLawyerRepo) AppendReview(_ context.Context, lawyerID string, review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[lawyerID]
	if !ok {
		return domain.ErrLawyerNotFound
	}
	p.Reviews = append(p.Reviews, review)
	return nil
}

func (r *stubLawyerRepo) IncrementConsultations(_ context.Context, lawyerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[lawyerID]
	if !ok {
		return domain.ErrLawyerNotFound
	}
	p.ConsultationsOffered++
	return nil
}

func (r *stubLawyerRepo) Delete(_ context.Context, lawyerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[lawyerID]; !ok {
		return domain.ErrLawyerNotFound
	}
	delete(r.profiles, lawyerID)
	for i, id := range r.order {
		if id == lawyerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// --- booking repository stub ---

type stubBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	counter  int64
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *stubBookingRepo) NextID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter, nil
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.LawyerID == b.LawyerID && existing.Slot == b.Slot && existing.Status != domain.StatusCancelled {
			return domain.ErrSlotConflict
		}
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) ExistsActiveSlot(_ context.Context, lawyerID string, slot int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.LawyerID == lawyerID && b.Slot == slot && b.Status != domain.StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return domain.ErrInvalidTransition
	}
	b.Status = to
	return nil
}

func (r *stubBookingRepo) HasCompleted(_ context.Context, clientID, lawyerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ClientID == clientID && b.LawyerID == lawyerID && b.Status == domain.StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBookingRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.ClientID == clientID })
}

func (r *stubBookingRepo) ListByLawyer(_ context.Context, lawyerID string) ([]*domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.LawyerID == lawyerID })
}

func (r *stubBookingRepo) ListAll(_ context.Context) ([]*domain.Booking, error) {
	return r.list(func(*domain.Booking) bool { return true })
}

func (r *stubBookingRepo) list(match func(*domain.Booking) bool) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for id := int64(1); id <= r.counter; id++ {
		if b, ok := r.bookings[id]; ok && match(b) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

// --- slot guard stub ---

type stubSlotGuard struct {
	mu       sync.Mutex
	reserved map[string]bool
}

func newStubSlotGuard() *stubSlotGuard {
	return &stubSlotGuard{reserved: make(map[string]bool)}
}

func guardKey(lawyerID string, slot int64) string {
	return lawyerID + "/" + time.Unix(0, slot).UTC().Format(time.RFC3339Nano)
}

func (g *stubSlotGuard) Reserve(_ context.Context, lawyerID string, slot int64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := guardKey(lawyerID, slot)
	if g.reserved[key] {
		return false, nil
	}
	g.reserved[key] = true
	return true, nil
}

func (g *stubSlotGuard) Release(_ context.Context, lawyerID string, slot int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.reserved, guardKey(lawyerID, slot))
	return nil
}

// --- audit sink stub ---

type stubAuditSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func newStubAuditSink() *stubAuditSink {
	return &stubAuditSink{}
}

func (s *stubAuditSink) Record(event domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubAuditSink) recorded() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEvent(nil), s.events...)
}
