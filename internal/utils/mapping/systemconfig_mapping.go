package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelSystemConfig converts a domain SystemConfig to a model SystemConfig
func ToModelSystemConfig(d domain.SystemConfig) models.SystemConfig {
	return models.SystemConfig{
		ConfigKey:   d.ConfigKey,
		ConfigValue: d.ConfigValue,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSystemConfig converts a model SystemConfig to a domain SystemConfig
func ToDomainSystemConfig(m models.SystemConfig) domain.SystemConfig {
	return domain.SystemConfig{
		ConfigKey:   m.ConfigKey,
		ConfigValue: m.ConfigValue,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
