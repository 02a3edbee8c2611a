package domain

import "errors"

// Sentinel errors returned by core services. The HTTP layer maps each of
// these to a deterministic status code in the central error handler.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrLawyerNotFound     = errors.New("lawyer profile not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyExists      = errors.New("lawyer profile already exists")
	ErrAlreadyOnboarded   = errors.New("user already onboarded")
	ErrSlotConflict       = errors.New("slot already booked")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotEligible        = errors.New("no completed consultation with this lawyer")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
