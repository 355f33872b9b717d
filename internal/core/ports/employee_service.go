package ports

import (
	"context"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// CreateEmployeeInput carries all data needed to provision a new employee.
type CreateEmployeeInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Skills   []string
}

// UpdateEmployeeInput carries a partial update; empty fields keep the
// stored values.
type UpdateEmployeeInput struct {
	Name   string
	Email  string
	Role   string
	Skills []string
}

// EmployeeService manages employee records.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
