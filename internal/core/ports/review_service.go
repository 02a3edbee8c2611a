package ports

import "context"

// ReviewService appends reviews to lawyer profiles.
type ReviewService interface {
	// Add appends a review. The caller must hold the client role and at
	// least one completed booking with the lawyer; rating must be in
	// [1,5]. Repeat reviews by the same client are allowed by policy.
	Add(ctx context.Context, caller, lawyerID string, rating int64, comment string) error
}
