package repositories

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves projects, optionally filtered by status.
	ListProjects(ctx context.Context, status *domain.ProjectStatus, limit int, offset int) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates an existing project.
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectRepositoryFacade combines project read and write interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
