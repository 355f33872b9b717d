package ports

import (
	"context"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
// Create must surface the store's unique-email violation as
// domain.ErrUserExists; the service-level pre-check is only a fast path.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
