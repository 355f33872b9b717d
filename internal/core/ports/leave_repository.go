package ports

import (
	"context"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// LeaveRepository defines the interface for leave request persistence.
// Find methods return requests newest first.
type LeaveRepository interface {
	Create(ctx context.Context, request *domain.LeaveRequest) (*domain.LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error)
	FindAll(ctx context.Context) ([]domain.LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeaveStatus) (*domain.LeaveRequest, error)
}
