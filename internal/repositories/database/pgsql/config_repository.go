package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	"github.com/sunyield/sunyield_backend/internal/models"
	"github.com/sunyield/sunyield_backend/internal/utils/mapping"
)

type PgxConfigRepository struct {
	db *pgxpool.Pool
}

func newPgxConfigRepository(db *pgxpool.Pool) portsrepo.ConfigRepositoryFacade {
	return &PgxConfigRepository{db: db}
}

// Ensure PgxConfigRepository implements portsrepo.ConfigRepositoryFacade
var _ portsrepo.ConfigRepositoryFacade = (*PgxConfigRepository)(nil)

const configColumns = `config_key, config_value, description, created_at, created_by, last_updated_at, last_updated_by`

func scanConfig(row pgx.Row) (*models.SystemConfig, error) {
	var m models.SystemConfig
	err := row.Scan(
		&m.ConfigKey,
		&m.ConfigValue,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxConfigRepository) FindConfigByKey(ctx context.Context, key string) (*domain.SystemConfig, error) {
	query := `SELECT ` + configColumns + ` FROM system_configs WHERE config_key = $1;`
	m, err := scanConfig(r.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("configuration not found")
		}
		return nil, fmt.Errorf("failed to find config %s: %w", key, err)
	}
	d := mapping.ToDomainSystemConfig(*m)
	return &d, nil
}

func (r *PgxConfigRepository) ListConfigs(ctx context.Context) ([]domain.SystemConfig, error) {
	query := `SELECT ` + configColumns + ` FROM system_configs ORDER BY config_key;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query configs: %w", err)
	}
	defer rows.Close()

	modelConfigs := []models.SystemConfig{}
	for rows.Next() {
		m, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		modelConfigs = append(modelConfigs, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating config rows: %w", rows.Err())
	}

	configs := make([]domain.SystemConfig, len(modelConfigs))
	for i, m := range modelConfigs {
		configs[i] = mapping.ToDomainSystemConfig(m)
	}
	return configs, nil
}

func (r *PgxConfigRepository) UpsertConfig(ctx context.Context, cfg domain.SystemConfig) error {
	m := mapping.ToModelSystemConfig(cfg)
	query := `
        INSERT INTO system_configs (` + configColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (config_key) DO UPDATE SET
            config_value = EXCLUDED.config_value,
            description = EXCLUDED.description,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.db.Exec(ctx, query,
		m.ConfigKey,
		m.ConfigValue,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert config %s: %w", m.ConfigKey, err)
	}
	return nil
}
