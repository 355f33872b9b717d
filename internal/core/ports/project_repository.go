package ports

import (
	"context"

	"github.com/staffhub/employee-system/internal/core/domain"
)

// ProjectRepository defines the interface for project persistence.
// Create must surface the store's unique-name violation as
// domain.ErrProjectExists.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindAll(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
