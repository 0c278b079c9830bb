package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelReward converts a domain Reward to a model Reward
func ToModelReward(d domain.Reward) models.Reward {
	return models.Reward{
		RewardID:     d.RewardID,
		UserID:       d.UserID,
		ProjectID:    d.ProjectID,
		Month:        d.Month,
		Year:         d.Year,
		EnergyKwh:    d.EnergyKwh,
		RewardAmount: d.RewardAmount,
		Status:       string(d.Status),
		Reason:       d.Reason,
		Date:         d.Date,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReward converts a model Reward to a domain Reward
func ToDomainReward(m models.Reward) domain.Reward {
	return domain.Reward{
		RewardID:     m.RewardID,
		UserID:       m.UserID,
		ProjectID:    m.ProjectID,
		Month:        m.Month,
		Year:         m.Year,
		EnergyKwh:    m.EnergyKwh,
		RewardAmount: m.RewardAmount,
		Status:       domain.RewardStatus(m.Status),
		Reason:       m.Reason,
		Date:         m.Date,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRewardSlice converts a slice of model Rewards to domain Rewards
func ToDomainRewardSlice(ms []models.Reward) []domain.Reward {
	ds := make([]domain.Reward, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReward(m)
	}
	return ds
}
