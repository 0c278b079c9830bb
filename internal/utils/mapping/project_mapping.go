package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:               d.ProjectID,
		Name:                    d.Name,
		Location:                d.Location,
		Description:             d.Description,
		ProjectType:             d.ProjectType,
		EnergyCapacityKwp:       d.EnergyCapacityKwp,
		MinContribution:         d.MinContribution,
		SubscriptionPrice:       d.SubscriptionPrice,
		Efficiency:              string(d.Efficiency),
		Status:                  string(d.Status),
		ImageURL:                d.ImageURL,
		OperationalValidityYear: d.OperationalValidityYear,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:               m.ProjectID,
		Name:                    m.Name,
		Location:                m.Location,
		Description:             m.Description,
		ProjectType:             m.ProjectType,
		EnergyCapacityKwp:       m.EnergyCapacityKwp,
		MinContribution:         m.MinContribution,
		SubscriptionPrice:       m.SubscriptionPrice,
		Efficiency:              domain.ProjectEfficiency(m.Efficiency),
		Status:                  domain.ProjectStatus(m.Status),
		ImageURL:                m.ImageURL,
		OperationalValidityYear: m.OperationalValidityYear,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects to domain Projects
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}
