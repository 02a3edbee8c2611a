package handler

import (
	"github.com/lexlink/consultation-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token    string `json:"token,omitempty"`
	Identity string `json:"identity"`
	Username string `json:"username"`
}

// --- Identity ---

type onboardingRequest struct {
	Role string `json:"role" validate:"required,oneof=client lawyer"`
}

type saveProfileRequest struct {
	// Role is absent on purpose: display-name saves must never change a
	// role. A role field in the payload is simply not bound.
	Name string `json:"name" validate:"required"`
}

type userProfileResponse struct {
	Identity  string `json:"identity"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	AdminRole string `json:"admin_role"`
}

type callerRoleResponse struct {
	AdminRole string `json:"admin_role"`
	IsAdmin   bool   `json:"is_admin"`
}

// --- Directory ---

type lawyerProfileRequest struct {
	Name             string   `json:"name"               validate:"required"`
	Bio              string   `json:"bio"                validate:"required"`
	Credentials      []string `json:"credentials"        validate:"required,min=1,dive,required"`
	AreasOfExpertise []string `json:"areas_of_expertise" validate:"required,min=1,dive,required"`
	Languages        []string `json:"languages"          validate:"required,min=1,dive,required"`
	Fee              int64    `json:"fee"                validate:"gte=0"`
}

type reviewResponse struct {
	Rating  int64  `json:"rating"`
	Comment string `json:"comment"`
}

type lawyerProfileResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Bio                  string           `json:"bio"`
	Fee                  int64            `json:"fee"`
	Status               string           `json:"status"`
	Credentials          []string         `json:"credentials"`
	AreasOfExpertise     []string         `json:"areas_of_expertise"`
	Languages            []string         `json:"languages"`
	ConsultationsOffered int64            `json:"consultations_offered"`
	Reviews              []reviewResponse `json:"reviews"`
	AverageRating        float64          `json:"average_rating"`
}

// --- Bookings ---

type bookConsultationRequest struct {
	LawyerID    string `json:"lawyer_id"    validate:"required"`
	Slot        int64  `json:"slot"         validate:"required,gt=0"`
	DurationMin int64  `json:"duration_min" validate:"required,gte=30,lte=180"`
	Fee         int64  `json:"fee"          validate:"gte=0"`
}

type bookConsultationResponse struct {
	BookingID int64 `json:"booking_id"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type bookingResponse struct {
	BookingID   int64  `json:"booking_id"`
	LawyerID    string `json:"lawyer_id"`
	ClientID    string `json:"client_id"`
	Slot        int64  `json:"slot"`
	DurationMin int64  `json:"duration_min"`
	Fee         int64  `json:"fee"`
	Status      string `json:"status"`
}

// --- Reviews ---

type addReviewRequest struct {
	Rating  int64  `json:"rating"  validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// --- Dashboards ---

type clientDashboardResponse struct {
	Bookings []bookingResponse       `json:"bookings"`
	Lawyers  []lawyerProfileResponse `json:"lawyers"`
}

type bookingSummaryResponse struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
}

type lawyerDashboardResponse struct {
	Profile  lawyerProfileResponse  `json:"profile"`
	Bookings []bookingResponse      `json:"bookings"`
	Summary  bookingSummaryResponse `json:"summary"`
}

// --- Admin ---

type assignAdminRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user guest"`
}

type adminUserResponse struct {
	Identity string `json:"identity"`
	Role     string `json:"role,omitempty"`
}

// --- Mappers ---

func toLawyerResponse(p *domain.LawyerProfile) lawyerProfileResponse {
	reviews := make([]reviewResponse, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, reviewResponse{Rating: r.Rating, Comment: r.Comment})
	}
	return lawyerProfileResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Bio:                  p.Bio,
		Fee:                  p.Fee,
		Status:               string(p.Tier),
		Credentials:          p.Credentials,
		AreasOfExpertise:     p.AreasOfExpertise,
		Languages:            p.Languages,
		ConsultationsOffered: p.ConsultationsOffered,
		Reviews:              reviews,
		AverageRating:        p.AverageRating(),
	}
}

func toLawyerResponses(profiles []*domain.LawyerProfile) []lawyerProfileResponse {
	out := make([]lawyerProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toLawyerResponse(p))
	}
	return out
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:   b.ID,
		LawyerID:    b.LawyerID,
		ClientID:    b.ClientID,
		Slot:        b.Slot,
		DurationMin: b.DurationMin,
		Fee:         b.Fee,
		Status:      string(b.Status),
	}
}

func toBookingResponses(bookings []*domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}
