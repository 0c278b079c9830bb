package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// GetProjectByID retrieves a project by ID.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves a paginated list of projects, optionally
	// filtered by status.
	ListProjects(ctx context.Context, params dto.ListProjectsParams) (*dto.ListProjectsResponse, error)

	// GetAvailableCapacity returns the project capacity not yet reserved by
	// paid subscriptions.
	GetAvailableCapacity(ctx context.Context, projectID string) (decimal.Decimal, error)
}

// ProjectWriterSvc defines admin write operations for project data
type ProjectWriterSvc interface {
	// CreateProject persists a new project.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)

	// UpdateProject updates project details.
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
