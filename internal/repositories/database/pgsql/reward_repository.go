package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	"github.com/sunyield/sunyield_backend/internal/models"
	"github.com/sunyield/sunyield_backend/internal/utils/mapping"
	"github.com/sunyield/sunyield_backend/internal/utils/pagination"
)

type PgxRewardRepository struct {
	db *pgxpool.Pool
}

func newPgxRewardRepository(db *pgxpool.Pool) portsrepo.RewardRepositoryFacade {
	return &PgxRewardRepository{db: db}
}

// Ensure PgxRewardRepository implements portsrepo.RewardRepositoryFacade
var _ portsrepo.RewardRepositoryFacade = (*PgxRewardRepository)(nil)

const rewardColumns = `reward_id, user_id, project_id, month, year, energy_kwh, reward_amount, status, reason, date,
		created_at, created_by, last_updated_at, last_updated_by`

func scanReward(row pgx.Row) (*models.Reward, error) {
	var m models.Reward
	err := row.Scan(
		&m.RewardID,
		&m.UserID,
		&m.ProjectID,
		&m.Month,
		&m.Year,
		&m.EnergyKwh,
		&m.RewardAmount,
		&m.Status,
		&m.Reason,
		&m.Date,
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

// SaveRewards inserts one accrual run's entries as a single batch.
func (r *PgxRewardRepository) SaveRewards(ctx context.Context, rewards []domain.Reward) error {
	if len(rewards) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
        INSERT INTO rewards (` + rewardColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	for _, reward := range rewards {
		m := mapping.ToModelReward(reward)
		batch.Queue(query,
			m.RewardID,
			m.UserID,
			m.ProjectID,
			m.Month,
			m.Year,
			m.EnergyKwh,
			m.RewardAmount,
			m.Status,
			m.Reason,
			m.Date,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rewards {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert reward batch: %w", err)
		}
	}
	return nil
}

func (r *PgxRewardRepository) ListRewardsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Reward, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{userID, limit + 1}
	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE user_id = $1
    `
	if nextToken != nil && *nextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (date, created_at) < ($3, $4)`
		args = append(args, date, createdAt)
	}
	query += `
        ORDER BY date DESC, created_at DESC
        LIMIT $2;
    `

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query rewards for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelRewards := []models.Reward{}
	for rows.Next() {
		m, err := scanReward(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan reward row: %w", err)
		}
		modelRewards = append(modelRewards, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating reward rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(modelRewards) > limit {
		modelRewards = modelRewards[:limit]
		last := modelRewards[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainRewardSlice(modelRewards), newNextToken, nil
}

func (r *PgxRewardRepository) ListRewardsByProjectPeriod(ctx context.Context, projectID string, month, year int) ([]domain.Reward, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE project_id = $1 AND month = $2 AND year = $3
        ORDER BY created_at;
    `
	rows, err := r.db.Query(ctx, query, projectID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards for project %s: %w", projectID, err)
	}
	defer rows.Close()

	modelRewards := []models.Reward{}
	for rows.Next() {
		m, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward row: %w", err)
		}
		modelRewards = append(modelRewards, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reward rows: %w", rows.Err())
	}

	return mapping.ToDomainRewardSlice(modelRewards), nil
}

func (r *PgxRewardRepository) HasRewardsForPeriod(ctx context.Context, projectID string, month, year int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM rewards WHERE project_id = $1 AND month = $2 AND year = $3);`
	var exists bool
	if err := r.db.QueryRow(ctx, query, projectID, month, year).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check rewards for project %s period %d/%d: %w", projectID, month, year, err)
	}
	return exists, nil
}

func sumSuccessRewards(ctx context.Context, q querier, userID string) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(reward_amount), 0)
        FROM rewards
        WHERE user_id = $1 AND status = $2;
    `
	var total decimal.Decimal
	err := q.QueryRow(ctx, query, userID, string(domain.RewardSuccess)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum rewards for user %s: %w", userID, err)
	}
	return total, nil
}

func (r *PgxRewardRepository) SumSuccessRewards(ctx context.Context, userID string) (decimal.Decimal, error) {
	return sumSuccessRewards(ctx, r.db, userID)
}

func (r *PgxRewardRepository) SumSuccessRewardsInTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	return sumSuccessRewards(ctx, tx, userID)
}
