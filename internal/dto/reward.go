package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// AccrueRewardsRequest triggers one accrual run for a project period.
type AccrueRewardsRequest struct {
	ProjectID string          `json:"projectID" binding:"required"`
	Month     int             `json:"month" binding:"required,min=1,max=12"`
	Year      int             `json:"year" binding:"required,min=2020"`
	EnergyKwh decimal.Decimal `json:"energyKwh" binding:"required"`
}

// RewardResponse defines the data returned for a reward entry.
type RewardResponse struct {
	RewardID     string              `json:"rewardID"`
	UserID       string              `json:"userID"`
	ProjectID    string              `json:"projectID"`
	Month        int                 `json:"month"`
	Year         int                 `json:"year"`
	EnergyKwh    decimal.Decimal     `json:"energyKwh"`
	RewardAmount decimal.Decimal     `json:"rewardAmount"`
	Status       domain.RewardStatus `json:"status"`
	Reason       string              `json:"reason,omitempty"`
	Date         time.Time           `json:"date"`
}

// ToRewardResponse converts a domain.Reward to RewardResponse DTO.
func ToRewardResponse(r *domain.Reward) RewardResponse {
	return RewardResponse{
		RewardID:     r.RewardID,
		UserID:       r.UserID,
		ProjectID:    r.ProjectID,
		Month:        r.Month,
		Year:         r.Year,
		EnergyKwh:    r.EnergyKwh,
		RewardAmount: r.RewardAmount,
		Status:       r.Status,
		Reason:       r.Reason,
		Date:         r.Date,
	}
}

// AccrueRewardsResponse summarizes one accrual run.
type AccrueRewardsResponse struct {
	ProjectID        string           `json:"projectID"`
	Month            int              `json:"month"`
	Year             int              `json:"year"`
	TotalDistributed decimal.Decimal  `json:"totalDistributed"`
	Rewards          []RewardResponse `json:"rewards"`
}

// ListRewardsParams defines query parameters for reward history.
type ListRewardsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListRewardsResponse wraps a page of reward entries.
type ListRewardsResponse struct {
	Rewards   []RewardResponse `json:"rewards"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToListRewardsResponse converts a page of domain.Reward to the DTO.
func ToListRewardsResponse(rewards []domain.Reward, nextToken *string) ListRewardsResponse {
	responses := make([]RewardResponse, len(rewards))
	for i, r := range rewards {
		responses[i] = ToRewardResponse(&r)
	}
	return ListRewardsResponse{Rewards: responses, NextToken: nextToken}
}
