package repositories

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// ConfigReader defines read operations for system configuration
type ConfigReader interface {
	// FindConfigByKey retrieves a single configuration entry.
	FindConfigByKey(ctx context.Context, key string) (*domain.SystemConfig, error)

	// ListConfigs retrieves all configuration entries.
	ListConfigs(ctx context.Context) ([]domain.SystemConfig, error)
}

// ConfigWriter defines write operations for system configuration
type ConfigWriter interface {
	// UpsertConfig creates or replaces a configuration entry.
	UpsertConfig(ctx context.Context, cfg domain.SystemConfig) error
}

// ConfigRepositoryFacade combines config read and write interfaces.
type ConfigRepositoryFacade interface {
	ConfigReader
	ConfigWriter
}
