package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// RewardReader defines read operations for reward accrual entries.
type RewardReader interface {
	// ListRewardsByUser retrieves a user's reward history, newest first.
	ListRewardsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Reward, *string, error)

	// ListRewardsByProjectPeriod retrieves all entries for one accrual run.
	ListRewardsByProjectPeriod(ctx context.Context, projectID string, month, year int) ([]domain.Reward, error)

	// HasRewardsForPeriod reports whether an accrual already ran for the
	// project and period.
	HasRewardsForPeriod(ctx context.Context, projectID string, month, year int) (bool, error)

	// SumSuccessRewards returns the user's total of SUCCESS reward amounts.
	SumSuccessRewards(ctx context.Context, userID string) (decimal.Decimal, error)
}

// RewardWriter defines append operations for reward entries.
type RewardWriter interface {
	// SaveRewards persists one accrual run's entries as a batch.
	SaveRewards(ctx context.Context, rewards []domain.Reward) error

	// SumSuccessRewardsInTx is SumSuccessRewards evaluated inside the
	// caller's transaction.
	SumSuccessRewardsInTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error)
}

// RewardRepositoryFacade combines reward read and write interfaces.
type RewardRepositoryFacade interface {
	RewardReader
	RewardWriter
}
