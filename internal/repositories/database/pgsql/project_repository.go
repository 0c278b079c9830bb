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

type PgxProjectRepository struct {
	db *pgxpool.Pool
}

func newPgxProjectRepository(db *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{db: db}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryFacade
var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `project_id, name, location, description, project_type, energy_capacity_kwp,
		min_contribution, subscription_price, efficiency, status, image_url, operational_validity_year,
		created_at, created_by, last_updated_at, last_updated_by`

func scanProject(row pgx.Row) (*models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.Name,
		&m.Location,
		&m.Description,
		&m.ProjectType,
		&m.EnergyCapacityKwp,
		&m.MinContribution,
		&m.SubscriptionPrice,
		&m.Efficiency,
		&m.Status,
		&m.ImageURL,
		&m.OperationalValidityYear,
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

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	m, err := scanProject(r.db.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}
	d := mapping.ToDomainProject(*m)
	return &d, nil
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, status *domain.ProjectStatus, limit int, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	args := []any{limit, offset}
	query := `
        SELECT ` + projectColumns + `
        FROM projects
    `
	if status != nil {
		query += ` WHERE status = $3`
		args = append(args, string(*status))
	}
	query += `
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	modelProjects := []models.Project{}
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		modelProjects = append(modelProjects, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", rows.Err())
	}

	return mapping.ToDomainProjectSlice(modelProjects), nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
        INSERT INTO projects (` + projectColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.db.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.Location,
		m.Description,
		m.ProjectType,
		m.EnergyCapacityKwp,
		m.MinContribution,
		m.SubscriptionPrice,
		m.Efficiency,
		m.Status,
		m.ImageURL,
		m.OperationalValidityYear,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
        UPDATE projects
        SET name = $1, location = $2, description = $3, project_type = $4, energy_capacity_kwp = $5,
            min_contribution = $6, subscription_price = $7, efficiency = $8, status = $9,
            image_url = $10, operational_validity_year = $11, last_updated_at = $12, last_updated_by = $13
        WHERE project_id = $14;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name,
		m.Location,
		m.Description,
		m.ProjectType,
		m.EnergyCapacityKwp,
		m.MinContribution,
		m.SubscriptionPrice,
		m.Efficiency,
		m.Status,
		m.ImageURL,
		m.OperationalValidityYear,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
