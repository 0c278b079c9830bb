package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reward is the database representation of a reward accrual entry.
type Reward struct {
	RewardID     string          `db:"reward_id"`
	UserID       string          `db:"user_id"`
	ProjectID    string          `db:"project_id"`
	Month        int             `db:"month"`
	Year         int             `db:"year"`
	EnergyKwh    decimal.Decimal `db:"energy_kwh"`
	RewardAmount decimal.Decimal `db:"reward_amount"`
	Status       string          `db:"status"`
	Reason       string          `db:"reason"`
	Date         time.Time       `db:"date"`
	AuditFields
}
