package services

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// RewardReaderSvc defines read operations for reward data
type RewardReaderSvc interface {
	// ListRewardsByUser retrieves a user's reward history.
	ListRewardsByUser(ctx context.Context, userID string, params dto.ListRewardsParams) (*dto.ListRewardsResponse, error)

	// ListRewardsByProjectPeriod retrieves all entries for one accrual run.
	ListRewardsByProjectPeriod(ctx context.Context, projectID string, month, year int) ([]domain.Reward, error)
}

// RewardAccrualSvc defines the monthly reward accrual operation
type RewardAccrualSvc interface {
	// AccrueMonthlyRewards distributes one month's generation for a project
	// across its paid subscribers, proportional to contribution. Exactly one
	// run per (project, month, year) is accepted.
	AccrueMonthlyRewards(ctx context.Context, req dto.AccrueRewardsRequest, actorUserID string) (*dto.AccrueRewardsResponse, error)

	// ListProjectsPendingAccrual returns active projects with no accrual
	// recorded for the given period. Used by the scheduled reminder.
	ListProjectsPendingAccrual(ctx context.Context, month, year int) ([]domain.Project, error)
}

// RewardSvcFacade combines all reward-related service interfaces
type RewardSvcFacade interface {
	RewardReaderSvc
	RewardAccrualSvc
}
