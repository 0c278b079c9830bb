package dto

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// UpsertConfigRequest defines the admin payload to set a policy value.
type UpsertConfigRequest struct {
	ConfigKey   string `json:"configKey" binding:"required"`
	ConfigValue string `json:"configValue" binding:"required"`
	Description string `json:"description"` // Optional
}

// ConfigResponse defines the data returned for a configuration entry.
type ConfigResponse struct {
	ConfigKey   string `json:"configKey"`
	ConfigValue string `json:"configValue"`
	Description string `json:"description,omitempty"`
}

// ToConfigResponse converts a domain.SystemConfig to ConfigResponse DTO.
func ToConfigResponse(c *domain.SystemConfig) ConfigResponse {
	return ConfigResponse{
		ConfigKey:   c.ConfigKey,
		ConfigValue: c.ConfigValue,
		Description: c.Description,
	}
}

// ToListConfigResponse converts a slice of domain.SystemConfig to DTOs.
func ToListConfigResponse(configs []domain.SystemConfig) []ConfigResponse {
	responses := make([]ConfigResponse, len(configs))
	for i, c := range configs {
		responses[i] = ToConfigResponse(&c)
	}
	return responses
}
