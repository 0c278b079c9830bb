package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// projectService manages solar project listings.
type projectService struct {
	projectRepo      portsrepo.ProjectRepositoryFacade
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, subscriptionRepo portsrepo.SubscriptionRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{
		projectRepo:      projectRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Ensure projectService implements the portssvc.ProjectSvcFacade interface
var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// GetProjectByID retrieves a project by ID.
func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}
	return project, nil
}

// ListProjects retrieves a paginated project list, optionally by status.
func (s *projectService) ListProjects(ctx context.Context, params dto.ListProjectsParams) (*dto.ListProjectsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var status *domain.ProjectStatus
	if params.Status != "" {
		st := domain.ProjectStatus(params.Status)
		switch st {
		case domain.ProjectActive, domain.ProjectPaused, domain.ProjectClosed:
			status = &st
		default:
			return nil, fmt.Errorf("%w: unknown project status %s", apperrors.ErrValidation, params.Status)
		}
	}

	projects, err := s.projectRepo.ListProjects(ctx, status, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	resp := dto.ToListProjectsResponse(projects)
	return &resp, nil
}

// GetAvailableCapacity returns capacity not yet reserved by paid subscriptions.
func (s *projectService) GetAvailableCapacity(ctx context.Context, projectID string) (decimal.Decimal, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}

	reserved, err := s.subscriptionRepo.SumReservedCapacity(ctx, projectID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum reserved capacity: %w", err)
	}

	available := project.EnergyCapacityKwp.Sub(reserved)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return available, nil
}

// CreateProject persists a new project.
func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EnergyCapacityKwp.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidation)
	}
	if req.MinContribution.LessThanOrEqual(decimal.Zero) || req.SubscriptionPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: contribution limits must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	project := domain.Project{
		ProjectID:               uuid.NewString(),
		Name:                    req.Name,
		Location:                req.Location,
		Description:             req.Description,
		ProjectType:             req.ProjectType,
		EnergyCapacityKwp:       req.EnergyCapacityKwp,
		MinContribution:         req.MinContribution,
		SubscriptionPrice:       req.SubscriptionPrice,
		Efficiency:              req.Efficiency,
		Status:                  domain.ProjectActive,
		ImageURL:                req.ImageURL,
		OperationalValidityYear: req.OperationalValidityYear,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		logger.Error("Failed to save project", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	logger.Info("Project created", slog.String("project_id", project.ProjectID), slog.String("name", project.Name))
	return &project, nil
}

// UpdateProject applies the provided fields to an existing project.
func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Location != nil {
		project.Location = *req.Location
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.MinContribution != nil {
		if req.MinContribution.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: minimum contribution must be positive", apperrors.ErrValidation)
		}
		project.MinContribution = *req.MinContribution
	}
	if req.SubscriptionPrice != nil {
		if req.SubscriptionPrice.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: subscription price must be positive", apperrors.ErrValidation)
		}
		project.SubscriptionPrice = *req.SubscriptionPrice
	}
	if req.Efficiency != nil {
		project.Efficiency = *req.Efficiency
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.ProjectActive, domain.ProjectPaused, domain.ProjectClosed:
			project.Status = *req.Status
		default:
			return nil, fmt.Errorf("%w: unknown project status %s", apperrors.ErrValidation, *req.Status)
		}
	}
	if req.ImageURL != nil {
		project.ImageURL = *req.ImageURL
	}

	project.LastUpdatedAt = time.Now().UTC()
	project.LastUpdatedBy = requestingUserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		logger.Error("Failed to update project", slog.String("error", err.Error()), slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	logger.Info("Project updated", slog.String("project_id", projectID))
	return project, nil
}
