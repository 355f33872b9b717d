package ports

import (
	"context"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// AuthService implements registration, login and token-to-identity resolution.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify resolves a previously authenticated user id back to its record.
	// Returns domain.ErrUserNotFound when the account no longer exists.
	Verify(ctx context.Context, userID string) (*domain.User, error)
}
