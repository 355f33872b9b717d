package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/employee-system/internal/core/domain"
	"github.com/staffhub/employee-system/internal/core/ports"
)

type LeaveService struct {
	repo   ports.LeaveRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewLeaveService(repo ports.LeaveRepository, logger zerolog.Logger) *LeaveService {
	return &LeaveService{repo: repo, logger: logger}
}

// WithAudit enables asynchronous audit recording of review decisions.
func (s *LeaveService) WithAudit(a ports.AuditRecorder) *LeaveService {
	s.audit = a
	return s
}

func (s *LeaveService) Request(ctx context.Context, input ports.RequestLeaveInput) (*domain.LeaveRequest, error) {
	now := time.Now().UTC()
	request := &domain.LeaveRequest{
		EmployeeID: input.EmployeeID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Reason:     input.Reason,
		Status:     domain.LeavePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("leave_id", created.ID).Str("employee_id", input.EmployeeID).Msg("leave requested")
	return created, nil
}

func (s *LeaveService) ListMine(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	return s.repo.FindByEmployee(ctx, employeeID)
}

func (s *LeaveService) ListAll(ctx context.Context) ([]domain.LeaveRequest, error) {
	return s.repo.FindAll(ctx)
}

func (s *LeaveService) Decide(ctx context.Context, reviewerID, requestID string, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	if !domain.ValidLeaveStatus(status) {
		return nil, domain.ErrInvalidLeaveStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			ActorID:   reviewerID,
			Action:    domain.AuditLeaveDecision,
			Subject:   requestID,
			Detail:    string(status),
			Timestamp: time.Now().UTC(),
		})
	}
	s.logger.Info().Str("leave_id", requestID).Str("status", string(status)).Msg("leave request decided")
	return updated, nil
}
