package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// configService serves policy values from an in-memory cache in front of the
// config store. Admin writes invalidate the cached entry, so a changed cap
// or rate takes effect on the next read without a restart.
type configService struct {
	configRepo portsrepo.ConfigRepositoryFacade

	mu    sync.RWMutex
	cache map[string]string
}

// NewConfigService creates a new ConfigService.
func NewConfigService(configRepo portsrepo.ConfigRepositoryFacade) portssvc.ConfigSvcFacade {
	return &configService{
		configRepo: configRepo,
		cache:      make(map[string]string),
	}
}

// Ensure configService implements the portssvc.ConfigSvcFacade interface
var _ portssvc.ConfigSvcFacade = (*configService)(nil)

// getValue returns the raw value for key, reading through the cache.
// A missing key is not an error; ok reports whether a value exists.
func (s *configService) getValue(ctx context.Context, key string) (string, bool) {
	s.mu.RLock()
	value, hit := s.cache[key]
	s.mu.RUnlock()
	if hit {
		return value, true
	}

	cfg, err := s.configRepo.FindConfigByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("Config lookup failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return "", false
	}

	s.mu.Lock()
	s.cache[key] = cfg.ConfigValue
	s.mu.Unlock()
	return cfg.ConfigValue, true
}

// GetDecimal returns the decimal value for key, or fallback when unset or
// unparsable.
func (s *configService) GetDecimal(ctx context.Context, key string, fallback decimal.Decimal) decimal.Decimal {
	raw, ok := s.getValue(ctx, key)
	if !ok {
		return fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Config value is not a decimal", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return value
}

// GetInt returns the integer value for key, or fallback when unset or
// unparsable.
func (s *configService) GetInt(ctx context.Context, key string, fallback int) int {
	raw, ok := s.getValue(ctx, key)
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Config value is not an integer", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return value
}

// ListConfigs returns all configuration entries from the store.
func (s *configService) ListConfigs(ctx context.Context) ([]domain.SystemConfig, error) {
	configs, err := s.configRepo.ListConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	return configs, nil
}

// SetConfig upserts an entry and invalidates its cached value.
func (s *configService) SetConfig(ctx context.Context, key, value, description string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if key == "" || value == "" {
		return fmt.Errorf("%w: config key and value are required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	cfg := domain.SystemConfig{
		ConfigKey:   key,
		ConfigValue: value,
		Description: description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.configRepo.UpsertConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to upsert config %s: %w", key, err)
	}

	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	logger.Info("Config updated", slog.String("key", key), slog.String("value", value))
	return nil
}
