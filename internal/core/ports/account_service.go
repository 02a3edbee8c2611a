package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// AccountService is the bundled identity provider: it trades credentials for
// a signed token whose subject is the opaque caller identity. Everything
// downstream of the auth middleware is independent of it.
type AccountService interface {
	Register(ctx context.Context, username, password string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}
