package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/employee-system/internal/core/domain"
	"github.com/staffhub/employee-system/internal/core/ports"
)

type ProjectService struct {
	repo      ports.ProjectRepository
	employees ports.EmployeeRepository
	logger    zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, employees ports.EmployeeRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, employees: employees, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		Name:          input.Name,
		Description:   input.Description,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		TeamMemberIDs: input.TeamMemberIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("name", created.Name).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*ports.ProjectDetail, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, project), nil
}

func (s *ProjectService) List(ctx context.Context) ([]ports.ProjectDetail, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]ports.ProjectDetail, 0, len(projects))
	for i := range projects {
		details = append(details, *s.expand(ctx, &projects[i]))
	}
	return details, nil
}

// Update applies a partial update: zero input fields keep the stored values.
func (s *ProjectService) Update(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		project.Name = input.Name
	}
	if input.Description != "" {
		project.Description = input.Description
	}
	if !input.StartDate.IsZero() {
		project.StartDate = input.StartDate
	}
	if !input.EndDate.IsZero() {
		project.EndDate = input.EndDate
	}
	if input.TeamMemberIDs != nil {
		project.TeamMemberIDs = input.TeamMemberIDs
	}
	project.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", id).Msg("project updated")
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Msg("project removed")
	return nil
}

// expand resolves team member ids to their public projection. Members that
// no longer resolve are skipped rather than failing the whole read.
func (s *ProjectService) expand(ctx context.Context, project *domain.Project) *ports.ProjectDetail {
	detail := &ports.ProjectDetail{
		Project:     *project,
		TeamMembers: make([]domain.TeamMember, 0, len(project.TeamMemberIDs)),
	}
	for _, memberID := range project.TeamMemberIDs {
		employee, err := s.employees.FindByID(ctx, memberID)
		if err != nil {
			s.logger.Debug().Str("project_id", project.ID).Str("employee_id", memberID).Msg("team member not found")
			continue
		}
		detail.TeamMembers = append(detail.TeamMembers, domain.TeamMember{
			ID:    employee.ID,
			Name:  employee.Name,
			Email: employee.Email,
		})
	}
	return detail
}
