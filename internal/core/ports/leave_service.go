package ports

import (
	"context"
	"time"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// RequestLeaveInput carries a new leave request filed by the caller.
type RequestLeaveInput struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// LeaveService manages leave requests and their review workflow.
type LeaveService interface {
	Request(ctx context.Context, input RequestLeaveInput) (*domain.LeaveRequest, error)
	ListMine(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error)
	ListAll(ctx context.Context) ([]domain.LeaveRequest, error)
	Decide(ctx context.Context, reviewerID, requestID string, status domain.LeaveStatus) (*domain.LeaveRequest, error)
}
