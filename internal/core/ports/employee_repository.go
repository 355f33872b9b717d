package ports

import (
	"context"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// EmployeeRepository defines the interface for employee record persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
