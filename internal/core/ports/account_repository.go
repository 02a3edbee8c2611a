package ports

import (
	"context"

	"github.com/lexlink/consultation-api/internal/core/domain"
)

// AccountRepository persists credentials for the bundled identity provider.
type AccountRepository interface {
	// Create inserts a new account and returns it with the generated
	// identity. Returns domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// FindByUsername returns an account or domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}
