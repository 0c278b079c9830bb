package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	Name                    string                   `json:"name" binding:"required"`
	Location                string                   `json:"location" binding:"required"`
	Description             string                   `json:"description"`
	ProjectType             string                   `json:"projectType"`
	EnergyCapacityKwp       decimal.Decimal          `json:"energyCapacityKwp" binding:"required"`
	MinContribution         decimal.Decimal          `json:"minContribution" binding:"required"`
	SubscriptionPrice       decimal.Decimal          `json:"subscriptionPrice" binding:"required"`
	Efficiency              domain.ProjectEfficiency `json:"efficiency" binding:"required,oneof=HIGH MEDIUM LOW"`
	ImageURL                string                   `json:"imageUrl"`
	OperationalValidityYear int                      `json:"operationalValidityYear"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProjectRequest struct {
	Name              *string                   `json:"name"`
	Location          *string                   `json:"location"`
	Description       *string                   `json:"description"`
	MinContribution   *decimal.Decimal          `json:"minContribution"`
	SubscriptionPrice *decimal.Decimal          `json:"subscriptionPrice"`
	Efficiency        *domain.ProjectEfficiency `json:"efficiency"`
	Status            *domain.ProjectStatus     `json:"status"`
	ImageURL          *string                   `json:"imageUrl"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID               string                   `json:"projectID"`
	Name                    string                   `json:"name"`
	Location                string                   `json:"location"`
	Description             string                   `json:"description,omitempty"`
	ProjectType             string                   `json:"projectType,omitempty"`
	EnergyCapacityKwp       decimal.Decimal          `json:"energyCapacityKwp"`
	MinContribution         decimal.Decimal          `json:"minContribution"`
	SubscriptionPrice       decimal.Decimal          `json:"subscriptionPrice"`
	Efficiency              domain.ProjectEfficiency `json:"efficiency"`
	Status                  domain.ProjectStatus     `json:"status"`
	ImageURL                string                   `json:"imageUrl,omitempty"`
	OperationalValidityYear int                      `json:"operationalValidityYear,omitempty"`
	CreatedAt               time.Time                `json:"createdAt"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:               p.ProjectID,
		Name:                    p.Name,
		Location:                p.Location,
		Description:             p.Description,
		ProjectType:             p.ProjectType,
		EnergyCapacityKwp:       p.EnergyCapacityKwp,
		MinContribution:         p.MinContribution,
		SubscriptionPrice:       p.SubscriptionPrice,
		Efficiency:              p.Efficiency,
		Status:                  p.Status,
		ImageURL:                p.ImageURL,
		OperationalValidityYear: p.OperationalValidityYear,
		CreatedAt:               p.CreatedAt,
	}
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Status string `form:"status"` // Optional filter
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToListProjectsResponse converts a slice of domain.Project to the DTO.
func ToListProjectsResponse(projects []domain.Project) ListProjectsResponse {
	responses := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = ToProjectResponse(&p)
	}
	return ListProjectsResponse{Projects: responses}
}
