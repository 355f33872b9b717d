package ports

import (
	"context"
	"time"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// CreateProjectInput carries all data needed to create a project.
type CreateProjectInput struct {
	Name          string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	TeamMemberIDs []string
}

// UpdateProjectInput carries a partial update; zero fields keep the stored
// values.
type UpdateProjectInput struct {
	Name          string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	TeamMemberIDs []string
}

// ProjectDetail is a project with its team members expanded to their public
// projection.
type ProjectDetail struct {
	domain.Project
	TeamMembers []domain.TeamMember `json:"team_members"`
}

// ProjectService manages project records.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id string) (*ProjectDetail, error)
	List(ctx context.Context) ([]ProjectDetail, error)
	Update(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
