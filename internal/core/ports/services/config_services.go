package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// ConfigSvcFacade serves system configuration through an in-memory cache.
// Writes invalidate the cached entry so readers never serve stale policy.
type ConfigSvcFacade interface {
	// GetDecimal returns the decimal value for key, or fallback when unset.
	GetDecimal(ctx context.Context, key string, fallback decimal.Decimal) decimal.Decimal

	// GetInt returns the integer value for key, or fallback when unset.
	GetInt(ctx context.Context, key string, fallback int) int

	// ListConfigs returns all configuration entries.
	ListConfigs(ctx context.Context) ([]domain.SystemConfig, error)

	// SetConfig upserts an entry and invalidates its cached value.
	SetConfig(ctx context.Context, key, value, description string, actorUserID string) error
}
