package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardStatus indicates whether a reward entry counts toward the balance.
// Only SUCCESS rewards are spendable.
type RewardStatus string

const (
	RewardSuccess  RewardStatus = "SUCCESS"
	RewardDeclined RewardStatus = "DECLINED"
	RewardCapped   RewardStatus = "CAPPED"
	RewardPending  RewardStatus = "PENDING"
)

// Reward is an append-only record of a subscriber's share of a project's
// energy production for one period. Immutable once created.
type Reward struct {
	RewardID     string          `json:"rewardID"`
	UserID       string          `json:"userID"`
	ProjectID    string          `json:"projectID"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	EnergyKwh    decimal.Decimal `json:"energyKwh"`
	RewardAmount decimal.Decimal `json:"rewardAmount"`
	Status       RewardStatus    `json:"status"`
	Reason       string          `json:"reason,omitempty"`
	Date         time.Time       `json:"date"` // first day of the accrual period
	AuditFields
}
